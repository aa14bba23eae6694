// Package report holds objects under test for the field- and setter-injection
// acceptance scenarios.
package report

// Computer is a collaborator.
type Computer struct {
	Name string
}

// Formatter is a collaborator reached through a setter.
type Formatter struct {
	Style string
}

// Builder has a private field slot and a conventional setter.
type Builder struct {
	computer  *Computer
	formatter *Formatter
}

// SetFormatter is the conventional setter the pass should prefer over a
// direct field write.
func (b *Builder) SetFormatter(formatter *Formatter) {
	b.formatter = formatter
}

// Computer exposes the private slot for assertions.
func (b *Builder) Computer() *Computer {
	return b.computer
}

// Formatter exposes the setter-backed slot for assertions.
func (b *Builder) Formatter() *Formatter {
	return b.formatter
}
