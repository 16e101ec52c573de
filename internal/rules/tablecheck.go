package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
)

// Rule identifiers for the table structure family.
const (
	RuleTableMinColumns    = "L2_MIN_COLUMNS"
	RuleTableMinRows       = "L2_MIN_ROWS"
	RuleTableGenericHeader = "L3_GENERIC_HEADERS"
	RuleTableMergedCells   = "L4_MERGED_CELLS"
	RuleTableTypeMix       = "L5_COLUMN_TYPE_MIX"
)

// Minimum useful table dimensions.
const (
	minTableColumns  = 2
	minTableDataRows = 3
)

var (
	genericHeader   = regexp.MustCompile(`(?i)^(column|col|header|field|data)\s*\d*$`)
	bareNumber      = regexp.MustCompile(`^\d+$`)
	numberValue     = regexp.MustCompile(`^-?[\d,]+(\.\d+)?$`)
	currencyValue   = regexp.MustCompile(`^[$€£¥]\s*[\d,]+(\.\d+)?$|^-?[\d,]+(\.\d+)?\s*(USD|EUR|GBP)$`)
	percentageValue = regexp.MustCompile(`^-?[\d,]+(\.\d+)?\s*%$`)
	dateValue       = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{1,2}[/.]\d{1,2}[/.]\d{2,4}|(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s*\d{0,4})$`)
)

// placeholderValues are cell values that carry no classifiable content.
var placeholderValues = map[string]bool{
	"-": true, "--": true, "—": true, "n/a": true, "na": true,
	"none": true, "tbd": true, "?": true,
}

// TableStructureValidator applies the four table rule families to an
// extracted table. Each family triggers independently.
type TableStructureValidator struct{}

// NewTableStructureValidator returns a TableStructureValidator.
func NewTableStructureValidator() *TableStructureValidator {
	return &TableStructureValidator{}
}

// Validate runs all four rule families against one table.
func (v *TableStructureValidator) Validate(t model.ExtractedTable) []model.Violation {
	var violations []model.Violation
	violations = append(violations, v.ValidateDimensions(t)...)
	violations = append(violations, v.validateHeaders(t)...)
	violations = append(violations, v.validateMergedCells(t)...)
	violations = append(violations, v.validateColumnTypes(t)...)
	return violations
}

// ValidateDimensions checks minimum column and data-row counts. Each
// deficit produces its own violation with the exact shortfall.
func (v *TableStructureValidator) ValidateDimensions(t model.ExtractedTable) []model.Violation {
	var violations []model.Violation

	cols := columnCount(t)
	if cols < minTableColumns {
		deficit := minTableColumns - cols
		violations = append(violations, model.Violation{
			RuleID:      RuleTableMinColumns,
			Severity:    model.SeverityMedium,
			Title:       "Table has too few columns",
			Description: fmt.Sprintf("Table has %d column(s); at least %d are needed for a meaningful comparison.", cols, minTableColumns),
			Suggestion:  fmt.Sprintf("Add %d more column(s).", deficit),
		})
	}

	if len(t.Rows) < minTableDataRows {
		deficit := minTableDataRows - len(t.Rows)
		violations = append(violations, model.Violation{
			RuleID:      RuleTableMinRows,
			Severity:    model.SeverityMedium,
			Title:       "Table has too few data rows",
			Description: fmt.Sprintf("Table has %d data row(s); at least %d are needed.", len(t.Rows), minTableDataRows),
			Suggestion:  fmt.Sprintf("Add %d more data row(s).", deficit),
		})
	}

	return violations
}

// validateHeaders flags generic or meaningless header labels.
func (v *TableStructureValidator) validateHeaders(t model.ExtractedTable) []model.Violation {
	var offenders []string
	for _, h := range t.Headers {
		trimmed := strings.TrimSpace(h)
		if trimmed == "" || len([]rune(trimmed)) == 1 ||
			bareNumber.MatchString(trimmed) || genericHeader.MatchString(trimmed) {
			label := trimmed
			if label == "" {
				label = "(empty)"
			}
			offenders = append(offenders, label)
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	named := offenders
	if len(named) > 3 {
		named = named[:3]
	}
	return []model.Violation{{
		RuleID:      RuleTableGenericHeader,
		Severity:    model.SeverityMedium,
		Title:       "Generic table headers",
		Description: fmt.Sprintf("%d header(s) are generic: %s", len(offenders), strings.Join(named, ", ")),
		Suggestion:  "Replace generic headers with descriptive labels.",
	}}
}

// validateMergedCells flags any colspan/rowspan usage; merged cells
// break downstream data extraction.
func (v *TableStructureValidator) validateMergedCells(t model.ExtractedTable) []model.Violation {
	if !t.HasMergedCells {
		return nil
	}
	types := make([]string, 0, len(t.MergeTypes))
	for _, mt := range t.MergeTypes {
		types = append(types, string(mt))
	}
	return []model.Violation{{
		RuleID:      RuleTableMergedCells,
		Severity:    model.SeverityHigh,
		Title:       "Table uses merged cells",
		Description: fmt.Sprintf("Merge types found: %s", strings.Join(types, ", ")),
		Suggestion:  "Flatten merged cells into one value per cell.",
	}}
}

// cellType classifies a single cell value.
func cellType(value string) string {
	v := strings.TrimSpace(value)
	switch {
	case currencyValue.MatchString(v):
		return "currency"
	case percentageValue.MatchString(v):
		return "percentage"
	case numberValue.MatchString(v):
		return "number"
	case dateValue.MatchString(v):
		return "date"
	default:
		return "text"
	}
}

// normalizeType folds currency, percentage and number into one numeric
// bucket; those can legitimately coexist in a column.
func normalizeType(t string) string {
	switch t {
	case "currency", "percentage", "number":
		return "numeric"
	}
	return t
}

// validateColumnTypes flags columns mixing incompatible value types.
// Ragged rows are tolerated: absent cells are simply skipped, and
// columns with fewer than two classifiable values carry too little
// evidence to judge.
func (v *TableStructureValidator) validateColumnTypes(t model.ExtractedTable) []model.Violation {
	var violations []model.Violation
	for col := 0; col < columnCount(t); col++ {
		rawTypes := map[string]bool{}
		normalized := map[string]bool{}
		classified := 0
		for _, val := range t.Column(col) {
			trimmed := strings.ToLower(strings.TrimSpace(val))
			if trimmed == "" || placeholderValues[trimmed] {
				continue
			}
			ct := cellType(val)
			rawTypes[ct] = true
			normalized[normalizeType(ct)] = true
			classified++
		}
		if classified < 2 || len(normalized) <= 1 {
			continue
		}

		var found []string
		for rt := range rawTypes {
			found = append(found, rt)
		}
		sort.Strings(found)

		header := fmt.Sprintf("column %d", col+1)
		if col < len(t.Headers) && strings.TrimSpace(t.Headers[col]) != "" {
			header = fmt.Sprintf("column %q", t.Headers[col])
		}
		violations = append(violations, model.Violation{
			RuleID:      RuleTableTypeMix,
			Severity:    model.SeverityHigh,
			Title:       "Inconsistent column value types",
			Description: fmt.Sprintf("%s mixes value types: %s", header, strings.Join(found, ", ")),
			Suggestion:  "Use one value type per column.",
		})
	}
	return violations
}

// columnCount derives the table width from headers, falling back to the
// widest row for headerless tables.
func columnCount(t model.ExtractedTable) int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	widest := 0
	for _, r := range t.Rows {
		if len(r) > widest {
			widest = len(r)
		}
	}
	return widest
}
