// Package catalog is the key-addressable dedup layer: circuits, dimension
// groups, elected representatives, and the equivalents folded under them,
// persisted through a store.Store. Grounded on spec.md's §4.7/§6 schema and
// on the encoding/gob row-serialization idiom of
// jinterlante1206-AleutianLocal/services/trace/agent/mcts/crs/journal.go
// (gob-encode a struct, store the bytes under a store key).
package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/egementunca/ID-Circuit/circuit"
)

// CircuitRecord is one row of the circuits table.
type CircuitRecord struct {
	ID               string
	Width            int
	Length           int
	GatesBlob        []byte // fingerprint bytes; canonical gate-sequence serialization
	CompositionNOT   int
	CompositionCNOT  int
	CompositionCCNOT int
	Fingerprint      string // hex of GatesBlob, used as the circuits table key
	RepresentativeID string // set once folded as an equivalent; empty for representatives and for not-yet-folded inserts
}

// DimGroupRecord is one row of the dim_groups table.
type DimGroupRecord struct {
	ID           string
	Width        int
	Length       int
	CircuitCount int
}

// RepresentativeRecord is one row of the representatives table.
type RepresentativeRecord struct {
	ID            string
	DimGroupID    string
	CircuitID     string
	CompositionNOT, CompositionCNOT, CompositionCCNOT int
	FullyUnrolled bool
}

// EquivalentRecord is one row of the equivalents table.
type EquivalentRecord struct {
	RepresentativeID string
	CircuitID        string
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func dimGroupKey(width, length int) string {
	return fmt.Sprintf("%d:%d", width, length)
}

func compositionKey(notN, cnotN, ccnotN int) string {
	return fmt.Sprintf("%d:%d:%d", notN, cnotN, ccnotN)
}

func representativeKey(dimGroupID string, composition string) string {
	return dimGroupID + "|" + composition
}

func fingerprintHex(c *circuit.Circuit) string {
	return fmt.Sprintf("%x", c.Fingerprint())
}
