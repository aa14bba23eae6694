package core

import (
	"reflect"
)

// resolution is the outcome of matching one slot (or constructor parameter)
// against the pool.
type resolution struct {
	candidate *Candidate
	reason    SkipReason
}

// resolve matches a required type and name against the pool.
//
// Matching is by assignability of the candidate's runtime type to the required
// type. A single compatible candidate wins outright. Multiple compatible
// candidates are disambiguated by exact name equality only; anything fancier
// would silently guess among same-typed doubles. Candidates already reserved
// for another slot in this pass are not considered.
func resolve(pool *Pool, required reflect.Type, name string) resolution {
	var compatible []*Candidate

	for _, c := range pool.Candidates() {
		if c.reserved || c.consumed {
			continue
		}

		if c.Type.AssignableTo(required) {
			compatible = append(compatible, c)
		}
	}

	switch len(compatible) {
	case 0:
		return resolution{reason: SkipNoMatch}
	case 1:
		return resolution{candidate: compatible[0]}
	}

	if name != "" {
		var named *Candidate

		for _, c := range compatible {
			if c.Name != name {
				continue
			}

			if named != nil {
				// Two candidates with the same binding name; still ambiguous.
				return resolution{reason: SkipAmbiguous}
			}

			named = c
		}

		if named != nil {
			return resolution{candidate: named}
		}
	}

	return resolution{reason: SkipAmbiguous}
}
