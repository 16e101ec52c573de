package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

var htmlTableBlock = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)

// markdownTable matches the header/separator/body shape of a pipe table.
var markdownTable = regexp.MustCompile(`(?m)^(\|.+\|)\s*\n(\|[-:\s|]+\|)\s*\n((?:\|.+\|\s*\n?)+)`)

// Tables extracts every table in content, HTML and Markdown alike,
// normalized into the same shape. Malformed tables are skipped, never
// an error: a document with no parseable tables simply yields none.
func Tables(content string) []model.ExtractedTable {
	var tables []model.ExtractedTable
	tables = append(tables, htmlTables(content)...)
	tables = append(tables, markdownTables(content)...)
	return tables
}

// htmlTables extracts <table> blocks via goquery.
func htmlTables(content string) []model.ExtractedTable {
	var tables []model.ExtractedTable
	for _, loc := range htmlTableBlock.FindAllStringIndex(content, -1) {
		block := content[loc[0]:loc[1]]
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(block))
		if err != nil {
			zap.L().Debug("extract: unparseable table block skipped", zap.Error(err))
			continue
		}
		t := model.ExtractedTable{Position: loc[0]}

		// Merged cell detection across the whole table.
		mergeSeen := map[model.MergeType]bool{}
		doc.Find("td, th").Each(func(_ int, s *goquery.Selection) {
			if _, ok := s.Attr("colspan"); ok {
				mergeSeen[model.MergeColspan] = true
			}
			if _, ok := s.Attr("rowspan"); ok {
				mergeSeen[model.MergeRowspan] = true
			}
		})
		for _, mt := range []model.MergeType{model.MergeColspan, model.MergeRowspan} {
			if mergeSeen[mt] {
				t.HasMergedCells = true
				t.MergeTypes = append(t.MergeTypes, mt)
			}
		}

		// Headers from <th>; fall back to the first row.
		doc.Find("th").Each(func(_ int, s *goquery.Selection) {
			t.Headers = append(t.Headers, strings.TrimSpace(s.Text()))
		})

		doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			// Rows that only contain <th> cells are header rows, already consumed.
			if tr.Find("td").Length() == 0 {
				return
			}
			var row []string
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			t.Rows = append(t.Rows, row)
		})

		if len(t.Headers) == 0 && len(t.Rows) > 0 {
			t.Headers = t.Rows[0]
			t.Rows = t.Rows[1:]
		}
		tables = append(tables, t)
	}
	return tables
}

// markdownTables extracts pipe tables. Markdown tables cannot express
// merged cells, so HasMergedCells is always false here.
func markdownTables(content string) []model.ExtractedTable {
	var tables []model.ExtractedTable
	matches := markdownTable.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		headerLine := content[m[2]:m[3]]
		bodyBlock := content[m[6]:m[7]]

		t := model.ExtractedTable{
			Position: m[0],
			Headers:  splitPipeRow(headerLine),
		}
		for _, line := range strings.Split(strings.TrimRight(bodyBlock, "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			t.Rows = append(t.Rows, splitPipeRow(line))
		}
		tables = append(tables, t)
	}
	return tables
}

// splitPipeRow splits a markdown table row on '|', trimming the outer pipes.
func splitPipeRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
