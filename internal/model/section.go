package model

import "strings"

// ContentZone classifies a section's role in answering the primary query.
type ContentZone string

const (
	ZoneMain          ContentZone = "MAIN"
	ZoneSupplementary ContentZone = "SUPPLEMENTARY"
)

// AttributeCategory ranks how distinctive a section's attribute is for
// the central entity.
type AttributeCategory string

const (
	CategoryRoot   AttributeCategory = "ROOT"
	CategoryUnique AttributeCategory = "UNIQUE"
	CategoryRare   AttributeCategory = "RARE"
	CategoryCommon AttributeCategory = "COMMON"
)

// FormatCode is an explicit section format supplied by the content brief.
// When present it overrides heuristic content-type detection.
type FormatCode string

const (
	FormatListing    FormatCode = "LISTING"
	FormatTable      FormatCode = "TABLE"
	FormatDefinitive FormatCode = "DEFINITIVE"
)

// ContentType is the derived classification of a section's body.
type ContentType string

const (
	ContentIntroduction ContentType = "introduction"
	ContentFAQ          ContentType = "faq"
	ContentComparison   ContentType = "comparison"
	ContentSteps        ContentType = "steps"
	ContentDefinition   ContentType = "definition"
	ContentList         ContentType = "list"
	ContentSummary      ContentType = "summary"
	ContentExplanation  ContentType = "explanation"
)

// Section is an immutable view over one heading-delimited slice of a
// document, plus brief-supplied structural metadata.
type Section struct {
	Key               string            `json:"key"`
	Heading           string            `json:"heading"`
	Content           string            `json:"content"`
	HeadingLevel      int               `json:"heading_level,omitempty"`
	ContentZone       ContentZone       `json:"content_zone,omitempty"`
	AttributeCategory AttributeCategory `json:"attribute_category,omitempty"`
	FormatCode        FormatCode        `json:"format_code,omitempty"`
	ContentType       ContentType       `json:"content_type,omitempty"`
}

// WordCount returns the number of whitespace-delimited tokens in the
// section body.
func (s *Section) WordCount() int {
	return len(strings.Fields(s.Content))
}
