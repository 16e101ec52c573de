package model

// BusinessInfo is the context bag supplied by the content-generation
// layer: who the content is for and what it must cover. All fields are
// optional; validators skip checks whose inputs are absent.
type BusinessInfo struct {
	SeedKeyword        string   `json:"seed_keyword,omitempty"`
	Industry           string   `json:"industry,omitempty"`
	Audience           string   `json:"audience,omitempty"`
	CoreServices       []string `json:"core_services,omitempty"`
	TargetKeywords     []string `json:"target_keywords,omitempty"`
	RequiredAttributes []string `json:"required_attributes,omitempty"`
	Language           string   `json:"language,omitempty"`
}

// Document is one unit of audit input: the generated content plus the
// structural metadata and context the validators consume.
type Document struct {
	URL           string           `json:"url,omitempty"`
	Content       string           `json:"content"`
	CentralEntity string           `json:"central_entity,omitempty"`
	Language      string           `json:"language,omitempty"`
	Sections      []Section        `json:"sections,omitempty"`
	Triples       []SemanticTriple `json:"triples,omitempty"`
	Business      BusinessInfo     `json:"business,omitempty"`
}
