package synth

import "github.com/egementunca/ID-Circuit/circuit"

// candidate is one entry of the gate library enumerated for a given width:
// every valid (kind, target, controls) tuple. The library has w NOTs,
// w(w-1) CNOTs, and w*C(w-1,2) CCNOTs, per spec.
type candidate struct {
	target   int
	controls []int
}

func (c candidate) toGate() (circuit.Gate, error) {
	return circuit.NewGate(c.target, c.controls)
}

// buildLibrary enumerates every candidate gate for the given width.
func buildLibrary(width int) []candidate {
	var lib []candidate
	for t := 0; t < width; t++ {
		lib = append(lib, candidate{target: t})
	}
	for t := 0; t < width; t++ {
		for c := 0; c < width; c++ {
			if c == t {
				continue
			}
			lib = append(lib, candidate{target: t, controls: []int{c}})
		}
	}
	for t := 0; t < width; t++ {
		for c1 := 0; c1 < width; c1++ {
			if c1 == t {
				continue
			}
			for c2 := c1 + 1; c2 < width; c2++ {
				if c2 == t {
					continue
				}
				lib = append(lib, candidate{target: t, controls: []int{c1, c2}})
			}
		}
	}
	return lib
}
