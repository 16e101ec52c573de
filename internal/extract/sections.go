package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

var (
	mdHeading   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	htmlHeading = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	tagStrip    = regexp.MustCompile(`<[^>]+>`)
)

// Sections splits document content into heading-delimited sections.
// Content before the first heading becomes an "intro" section. Both
// Markdown and HTML heading markers are recognized.
func Sections(content string) []model.Section {
	type mark struct {
		start, end int
		level      int
		heading    string
	}
	var marks []mark
	for _, m := range mdHeading.FindAllStringSubmatchIndex(content, -1) {
		marks = append(marks, mark{
			start:   m[0],
			end:     m[1],
			level:   m[3] - m[2],
			heading: strings.TrimSpace(content[m[4]:m[5]]),
		})
	}
	for _, m := range htmlHeading.FindAllStringSubmatchIndex(content, -1) {
		marks = append(marks, mark{
			start:   m[0],
			end:     m[1],
			level:   int(content[m[2]]) - '0',
			heading: strings.TrimSpace(tagStrip.ReplaceAllString(content[m[4]:m[5]], "")),
		})
	}
	// Restore document order; the two scans are each ordered already.
	for i := 1; i < len(marks); i++ {
		for j := i; j > 0 && marks[j].start < marks[j-1].start; j-- {
			marks[j], marks[j-1] = marks[j-1], marks[j]
		}
	}

	var sections []model.Section
	if len(marks) == 0 {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return []model.Section{{Key: "intro", Content: strings.TrimSpace(content)}}
	}

	if lead := strings.TrimSpace(content[:marks[0].start]); lead != "" {
		sections = append(sections, model.Section{Key: "intro", Content: lead})
	}
	for i, m := range marks {
		end := len(content)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		sections = append(sections, model.Section{
			Key:          sectionKey(m.heading, i),
			Heading:      m.heading,
			HeadingLevel: m.level,
			Content:      strings.TrimSpace(content[m.end:end]),
		})
	}
	return sections
}

// sectionKey derives a stable slug-style key from a heading.
func sectionKey(heading string, idx int) string {
	words := Words(heading)
	if len(words) == 0 {
		return fmt.Sprintf("section-%d", idx)
	}
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, "-")
}
