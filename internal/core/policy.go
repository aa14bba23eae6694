package core

// Policy controls which modifier combinations may receive a privileged write.
//
// Policies compose as a set of permissions: PolicyStaticFinal includes both
// PolicyFinal and PolicyStatic. The zero value, PolicyNone, permits no unsafe
// injection; final and static slots are skipped, never errored on.
type Policy uint8

// Policy levels.
const (
	// PolicyNone permits no injection into final or static slots.
	PolicyNone Policy = 0

	// PolicyFinal permits injection into final instance slots.
	PolicyFinal Policy = 1 << 0

	// PolicyStatic permits injection into static, non-final slots.
	PolicyStatic Policy = 1 << 1

	// PolicyStaticFinal permits injection into every slot, including static
	// final ones. A static final write is process-wide: every other user of
	// the shared storage sees the double until something puts the original
	// back. The engine never restores it.
	PolicyStaticFinal Policy = PolicyFinal | PolicyStatic
)

// PolicyFunc looks up the policy to apply to a given slot, so callers can
// grant unsafe injection per field rather than for a whole pass.
type PolicyFunc func(Slot) Policy

// Allows reports whether this policy permits writing the slot.
func (p Policy) Allows(slot Slot) bool {
	var need Policy

	if slot.Final {
		need |= PolicyFinal
	}

	if slot.Static {
		need |= PolicyStatic
	}

	return p&need == need
}

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "NONE"
	case PolicyFinal:
		return "FINAL"
	case PolicyStatic:
		return "STATIC"
	case PolicyStaticFinal:
		return "STATIC_FINAL"
	default:
		return "UNKNOWN"
	}
}

// FixedPolicy returns a PolicyFunc that applies the same policy to every slot.
func FixedPolicy(p Policy) PolicyFunc {
	return func(Slot) Policy {
		return p
	}
}
