// Package legacy holds objects under test for the unsafe-modifier acceptance
// scenarios: final fields and static (shared) storage.
package legacy

// Computer is a collaborator.
type Computer struct {
	Name string
}

// Defaults is process-shared storage; every Service embeds the same instance,
// so its slots are static. A write there is visible process-wide, and
// mockwire never restores the old value - tests that inject into it must put
// it back themselves.
type Defaults struct {
	clock  *Computer
	ledger *Computer `wire:"final"`
}

// Clock exposes the shared slot for assertions.
func (d *Defaults) Clock() *Computer {
	return d.clock
}

// Ledger exposes the shared final slot for assertions.
func (d *Defaults) Ledger() *Computer {
	return d.ledger
}

// SharedDefaults is the singleton Services embed.
//
//nolint:gochecknoglobals // Deliberately process-wide, that is the point of the scenario
var SharedDefaults = &Defaults{}

// Service has a final cache slot and shared static storage.
type Service struct {
	*Defaults

	cache *Computer `wire:"final"`
}

// NewService builds a Service over the shared defaults.
func NewService() *Service {
	return &Service{Defaults: SharedDefaults}
}

// Cache exposes the final slot for assertions.
func (s *Service) Cache() *Computer {
	return s.cache
}
