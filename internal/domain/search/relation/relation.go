// Package relation models how multiple filter values combine.
package relation

// Relation is the boolean combinator for a set of filter values.
type Relation string

// Supported relations.
const (
	And Relation = "and"
	Or  Relation = "or"
)

// Parse normalizes a raw relation value. Anything other than the literal
// "and" collapses to Or.
func Parse(raw string) Relation {
	if raw == string(And) {
		return And
	}
	return Or
}

// IsValid checks if the relation is one of the supported values.
func (r Relation) IsValid() bool {
	return r == And || r == Or
}
