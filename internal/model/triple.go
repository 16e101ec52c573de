package model

// SemanticTriple is an Entity-Attribute-Value fact the content is
// expected to cover. Triples are supplied by the content-planning layer
// and consumed read-only by coverage validators.
type SemanticTriple struct {
	Subject   TripleSubject   `json:"subject"`
	Predicate TriplePredicate `json:"predicate"`
	Object    TripleObject    `json:"object"`
	Lexical   TripleLexical   `json:"lexical,omitempty"`
}

// TripleSubject names the entity a fact is about.
type TripleSubject struct {
	Label string `json:"label"`
}

// TriplePredicate names the relation and its attribute category.
type TriplePredicate struct {
	Relation string            `json:"relation"`
	Category AttributeCategory `json:"category,omitempty"`
}

// TripleObject holds the fact's value.
type TripleObject struct {
	Value string `json:"value"`
}

// TripleLexical carries optional synonym hints for coverage matching.
type TripleLexical struct {
	Synonyms []string `json:"synonyms,omitempty"`
}
