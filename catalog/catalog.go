package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/egementunca/ID-Circuit/circuit"
	"github.com/egementunca/ID-Circuit/errs"
	"github.com/egementunca/ID-Circuit/revlog"
	"github.com/egementunca/ID-Circuit/store"
)

const (
	tableCircuits        = "circuits"
	tableDimGroups       = "dim_groups"
	tableRepresentatives = "representatives"
	tableRepIndex        = "rep_index"
	tableEquivalents     = "equivalents"
)

// Catalog is the dedup layer over a store.Store. Each writing method
// (InsertIdentity, FoldEquivalents) is a single store.Txn, matching spec's
// "one logical writer, one transaction per top-level operation" concurrency
// model. ListRepresentatives reads through Store.Scan/Store.Get outside a
// transaction.
type Catalog struct {
	s store.Store
}

// New wraps a store.Store as a Catalog.
func New(s store.Store) *Catalog {
	return &Catalog{s: s}
}

// FoldStats summarizes one fold_equivalents call.
type FoldStats struct {
	Inserted int
	Demoted  int
	Known    int
}

// InsertIdentity verifies C simulates to the identity, then inserts it if its
// fingerprint is new, electing it representative of its (width, length,
// composition) key if none yet exists there. Returns the circuit's id and
// whether it was newly inserted; per invariant 7, a duplicate fingerprint
// returns the existing id with wasNew=false, never an error.
func (c *Catalog) InsertIdentity(ctx context.Context, circ *circuit.Circuit) (id string, wasNew bool, err error) {
	tt, err := circ.Simulate()
	if err != nil {
		return "", false, err
	}
	if !tt.IsIdentity() {
		return "", false, errors.Wrapf(errs.ErrInvalidCircuit, "circuit does not simulate to the identity")
	}

	fp := fingerprintHex(circ)
	err = c.s.Txn(ctx, func(txn store.Txn) error {
		if existing, gerr := getCircuit(txn, fp); gerr == nil {
			id, wasNew = existing.ID, false
			return nil
		} else if !errors.Is(gerr, errs.ErrNotFound) {
			return gerr
		}

		width, length := circ.Width(), circ.Len()
		notN, cnotN, ccnotN := circ.Composition()
		newID := uuid.NewString()

		dimGroupID := dimGroupKey(width, length)
		dg, derr := getDimGroup(txn, dimGroupID)
		if errors.Is(derr, errs.ErrNotFound) {
			dg = DimGroupRecord{ID: dimGroupID, Width: width, Length: length}
		} else if derr != nil {
			return derr
		}
		dg.CircuitCount++
		if err := putDimGroup(txn, dg); err != nil {
			return err
		}

		compKey := compositionKey(notN, cnotN, ccnotN)
		repIndexKey := representativeKey(dimGroupID, compKey)
		repIDs, rerr := getRepIndex(txn, repIndexKey)
		if rerr != nil && !errors.Is(rerr, errs.ErrNotFound) {
			return rerr
		}

		rec := CircuitRecord{
			ID:                newID,
			Width:             width,
			Length:            length,
			GatesBlob:         circ.Fingerprint(),
			CompositionNOT:    notN,
			CompositionCNOT:   cnotN,
			CompositionCCNOT:  ccnotN,
			Fingerprint:       fp,
		}

		if len(repIDs) == 0 {
			repID := uuid.NewString()
			repRec := RepresentativeRecord{
				ID:               repID,
				DimGroupID:       dimGroupID,
				CircuitID:        newID,
				CompositionNOT:   notN,
				CompositionCNOT:  cnotN,
				CompositionCCNOT: ccnotN,
			}
			if err := putRepresentative(txn, repRec); err != nil {
				return err
			}
			if err := putRepIndex(txn, repIndexKey, append(repIDs, repID)); err != nil {
				return err
			}
		}

		if err := putCircuit(txn, rec); err != nil {
			return err
		}
		id, wasNew = newID, true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	logger := revlog.Component("catalog")
	logger.Debug().Str("fingerprint", fp).Bool("new", wasNew).Msg("insert_identity")
	return id, wasNew, nil
}

// ListRepresentatives returns every currently-active representative for
// dimension (width, length), across all compositions.
func (c *Catalog) ListRepresentatives(ctx context.Context, width, length int) ([]RepresentativeRecord, error) {
	var out []RepresentativeRecord
	dimGroupID := dimGroupKey(width, length)
	it, err := c.s.Scan(ctx, tableRepIndex, dimGroupID+"|")
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for it.Next() {
		var ids []string
		if err := decode(it.Value(), &ids); err != nil {
			return nil, err
		}
		for _, id := range ids {
			rec, err := c.getRepresentativeByID(ctx, id)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
	}
	return out, it.Err()
}

func (c *Catalog) getRepresentativeByID(ctx context.Context, id string) (RepresentativeRecord, error) {
	raw, err := c.s.Get(ctx, tableRepresentatives, id)
	if err != nil {
		return RepresentativeRecord{}, err
	}
	var rec RepresentativeRecord
	return rec, decode(raw, &rec)
}

// FoldEquivalents folds a freshly-unrolled equivalence class under repID: new
// circuits are inserted as equivalents pointing to repID; any pre-existing
// representative sharing the same (dim_group, composition) whose fingerprint
// appears among equivalents is demoted to an equivalent of repID.
// fullyUnrolled is recorded on the representative verbatim, per the
// unroller's report.
func (c *Catalog) FoldEquivalents(ctx context.Context, repID string, equivalents []*circuit.Circuit, fullyUnrolled bool) (FoldStats, error) {
	var stats FoldStats
	err := c.s.Txn(ctx, func(txn store.Txn) error {
		repRaw, err := txn.Get(tableRepresentatives, repID)
		if err != nil {
			return errors.Wrapf(err, "loading representative %s", repID)
		}
		var rep RepresentativeRecord
		if err := decode(repRaw, &rep); err != nil {
			return err
		}

		for _, eq := range equivalents {
			fp := fingerprintHex(eq)
			existing, gerr := getCircuit(txn, fp)
			switch {
			case errors.Is(gerr, errs.ErrNotFound):
				notN, cnotN, ccnotN := eq.Composition()
				rec := CircuitRecord{
					ID:                uuid.NewString(),
					Width:             eq.Width(),
					Length:            eq.Len(),
					GatesBlob:         eq.Fingerprint(),
					CompositionNOT:    notN,
					CompositionCNOT:   cnotN,
					CompositionCCNOT:  ccnotN,
					Fingerprint:       fp,
					RepresentativeID:  repID,
				}
				if err := putCircuit(txn, rec); err != nil {
					return err
				}
				if err := bumpDimGroupCount(txn, dimGroupKey(rec.Width, rec.Length)); err != nil {
					return err
				}
				if err := putEquivalent(txn, EquivalentRecord{RepresentativeID: repID, CircuitID: rec.ID}); err != nil {
					return err
				}
				stats.Inserted++

			case gerr != nil:
				return gerr

			case existing.RepresentativeID == repID:
				stats.Known++

			case existing.RepresentativeID == "":
				demoted, derr := c.findRepresentativeForCircuit(txn, existing)
				switch {
				case derr == nil && demoted.ID == repID:
					// existing is the representative currently being folded
					// (e.g. a rotation reproducing the root's own
					// fingerprint); nothing to relabel.
					stats.Known++
				case derr == nil:
					if err := demoteRepresentative(txn, demoted, existing, repID); err != nil {
						return err
					}
					stats.Demoted++
				case errors.Is(derr, errs.ErrNotFound):
					existing.RepresentativeID = repID
					if err := putCircuit(txn, existing); err != nil {
						return err
					}
					if err := putEquivalent(txn, EquivalentRecord{RepresentativeID: repID, CircuitID: existing.ID}); err != nil {
						return err
					}
					stats.Known++
				default:
					return derr
				}

			default:
				stats.Known++
			}
		}

		rep.FullyUnrolled = fullyUnrolled
		return putRepresentative(txn, rep)
	})
	if err != nil {
		return FoldStats{}, err
	}
	logger := revlog.Component("catalog")
	logger.Debug().Str("rep_id", repID).Int("inserted", stats.Inserted).Int("demoted", stats.Demoted).Msg("fold_equivalents")
	return stats, nil
}

// findRepresentativeForCircuit looks up the RepresentativeRecord, if any,
// whose CircuitID equals circ.ID, by scanning the rep_index group circ's own
// dimension/composition falls under. circ is passed in by the caller rather
// than re-fetched by id, since tableCircuits is keyed by fingerprint, not by
// circuit id. Callers already know the circuit isn't a pure equivalent
// (RepresentativeID == ""), so a hit here means it was itself elected
// representative.
func (c *Catalog) findRepresentativeForCircuit(txn store.Txn, circ CircuitRecord) (RepresentativeRecord, error) {
	dimGroupID := dimGroupKey(circ.Width, circ.Length)
	compKey := compositionKey(circ.CompositionNOT, circ.CompositionCNOT, circ.CompositionCCNOT)
	ids, err := getRepIndex(txn, representativeKey(dimGroupID, compKey))
	if err != nil {
		return RepresentativeRecord{}, err
	}
	for _, id := range ids {
		raw, err := txn.Get(tableRepresentatives, id)
		if err != nil {
			continue
		}
		var rec RepresentativeRecord
		if err := decode(raw, &rec); err != nil {
			continue
		}
		if rec.CircuitID == circ.ID {
			return rec, nil
		}
	}
	return RepresentativeRecord{}, errs.ErrNotFound
}

// demoteRepresentative reassigns demotedCircuit (the circuit record backing
// the demoted representative) to newRepID and removes demoted from its
// rep_index group. demotedCircuit is passed in by the caller rather than
// re-fetched by demoted.CircuitID, since tableCircuits is keyed by
// fingerprint, not by circuit id.
func demoteRepresentative(txn store.Txn, demoted RepresentativeRecord, demotedCircuit CircuitRecord, newRepID string) error {
	demotedCircuit.RepresentativeID = newRepID
	if err := putCircuit(txn, demotedCircuit); err != nil {
		return err
	}
	if err := putEquivalent(txn, EquivalentRecord{RepresentativeID: newRepID, CircuitID: demotedCircuit.ID}); err != nil {
		return err
	}

	compKey := compositionKey(demoted.CompositionNOT, demoted.CompositionCNOT, demoted.CompositionCCNOT)
	repIndexKey := representativeKey(demoted.DimGroupID, compKey)
	ids, err := getRepIndex(txn, repIndexKey)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != demoted.ID {
			filtered = append(filtered, id)
		}
	}
	return putRepIndex(txn, repIndexKey, filtered)
}
