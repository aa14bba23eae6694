// Package calc holds a small object under test for the constructor-injection
// acceptance scenarios.
package calc

// Computer is the collaborator the calculator depends on.
type Computer struct {
	Answers map[int]int64
}

// Retrieve returns the canned answer for a parameter.
func (c *Computer) Retrieve(param int) int64 {
	return c.Answers[param]
}

// ArticleCalculator depends on a Computer, supplied at construction time.
type ArticleCalculator struct {
	computer *Computer
}

// NewArticleCalculator is the constructor injection passes should prefer.
func NewArticleCalculator(computer *Computer) *ArticleCalculator {
	return &ArticleCalculator{computer: computer}
}

// Calculate delegates to the computer.
func (a *ArticleCalculator) Calculate(param int) int64 {
	return a.computer.Retrieve(param)
}
