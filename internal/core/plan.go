package core

import (
	"reflect"
	"unicode"
)

// planEntry is the per-slot resolution outcome, built before any mutation.
// Either outcome is final (a skip) or pending is true and commit will fill in
// the rest.
type planEntry struct {
	outcome SlotOutcome
	setter  reflect.Value
	pending bool
}

// buildPlan resolves every catalog slot against the pool without touching the
// target. Candidates picked for a pending entry are reserved so one double
// cannot satisfy two slots; they are only marked consumed on commit.
func buildPlan(target reflect.Value, slots []Slot, pool *Pool, cfg *config) []planEntry {
	plan := make([]planEntry, 0, len(slots))

	for _, slot := range slots {
		plan = append(plan, planSlot(target, slot, pool, cfg))
	}

	return plan
}

// planSlot resolves one slot: setter attempt first, then field attempt with a
// policy check. Skips are recorded, never errored on.
func planSlot(target reflect.Value, slot Slot, pool *Pool, cfg *config) planEntry {
	if setter := setterFor(target, slot); setter.IsValid() {
		res := resolve(pool, setter.Type().In(0), slot.Name)
		if res.candidate == nil {
			return skipEntry(slot, res.reason)
		}

		res.candidate.reserved = true

		return planEntry{
			outcome: SlotOutcome{Slot: slot, Candidate: res.candidate, Strategy: StrategySetter},
			setter:  setter,
			pending: true,
		}
	}

	res := resolve(pool, slot.Type, slot.Name)
	if res.candidate == nil {
		return skipEntry(slot, res.reason)
	}

	if !cfg.policy(slot).Allows(slot) {
		// The candidate stays unreserved: a policy skip commits nothing, so
		// the double remains available to other slots.
		return skipEntry(slot, SkipPolicy)
	}

	res.candidate.reserved = true

	return planEntry{
		outcome: SlotOutcome{Slot: slot, Candidate: res.candidate, Strategy: StrategyField},
		pending: true,
	}
}

// setterFor finds a conventional setter for the slot: a method named
// Set<Name> on the target taking exactly one argument. Returns the zero Value
// when absent.
func setterFor(target reflect.Value, slot Slot) reflect.Value {
	method := target.MethodByName("Set" + upperFirst(slot.Name))
	if !method.IsValid() {
		return reflect.Value{}
	}

	if method.Type().NumIn() != 1 || method.Type().IsVariadic() {
		return reflect.Value{}
	}

	return method
}

func skipEntry(slot Slot, reason SkipReason) planEntry {
	return planEntry{outcome: SlotOutcome{Slot: slot, Reason: reason}}
}

func upperFirst(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}

	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
