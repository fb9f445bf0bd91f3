package schema

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spektr-org/express/engine"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic Column Classification
// ============================================================================
// Inspects raw CSV data and generates a schema.Config automatically.
//
// Classification pipeline per column:
//   1. Drop null markers → detect type (numeric, date, bool, string)
//   2. Type → engine column kind (numeric, temporal, categorical)
//   3. Type + cardinality → classify role (dimension, measure, skip)
//   4. Cardinality hint and sorted sample values
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize int    // Max rows to inspect (0 = all). Default: 1000
	Name       string // Dataset name override (otherwise inferred)
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a schema.Config by inspecting CSV data.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV headers")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", len(rows)+1)
		}
		rows = append(rows, row)
	}

	config, err := Discover(headers, rows, opts...)
	if err != nil {
		return nil, err
	}
	config.DiscoveredFrom = "CSV"
	return config, nil
}

// Discover classifies the columns of an already-parsed table. rows are
// aligned with headers; short rows read as nulls.
func Discover(headers []string, rows [][]string, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if len(headers) == 0 {
		return nil, errors.New("dataset has no columns")
	}

	sample := rows
	if opt.SampleSize > 0 && len(sample) > opt.SampleSize {
		sample = sample[:opt.SampleSize]
	}

	config := &Config{
		Name:         opt.Name,
		Rows:         len(rows),
		DiscoveredAt: time.Now().Format(time.RFC3339),
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	seen := make(map[string]bool)
	for i, header := range headers {
		if seen[header] {
			return nil, errors.Errorf("duplicate column %q", header)
		}
		seen[header] = true
		config.Columns = append(config.Columns, analyzeColumn(header, i, sample).toMeta())
	}

	log.Printf("🔍 Schema: %d columns, %d measures, %d dimensions, %d skipped",
		len(config.Columns), len(config.MeasureKeys()), len(config.DimensionKeys()), len(config.SkippedKeys()))
	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header     string
	colType    columnType
	role       Role
	skipReason string
	timeLayout string

	// Stats
	uniqueCount int
	totalCount  int
	nullCount   int
	sampleVals  []string
	hasDecimals bool
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string) columnAnalysis {
	col := columnAnalysis{
		header:     header,
		totalCount: len(rows),
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) || IsNull(row[index]) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		values = append(values, val)
		uniqueSet[val] = true
	}
	col.uniqueCount = len(uniqueSet)

	if len(values) == 0 {
		col.role = RoleSkipped
		col.skipReason = "All values are empty/null"
		return col
	}

	col.sampleVals = collectSamples(uniqueSet, 10)

	// Step 1: Detect type
	col.colType, col.timeLayout = detectType(values)

	// Decimals signal continuous data
	if col.colType == typeNumeric {
		for _, v := range values {
			if strings.Contains(v, ".") {
				col.hasDecimals = true
				break
			}
		}
	}

	// Step 2: Classify role based on type + cardinality
	col.classifyRole()
	return col
}

// classifyRole determines dimension vs measure vs skip.
func (col *columnAnalysis) classifyRole() {
	rows := col.totalCount
	switch col.colType {

	case typeNumeric:
		if col.uniqueCount == rows && rows > 10 && !col.hasDecimals {
			// Every value a distinct integer → likely an ID
			col.role = RoleSkipped
			col.skipReason = "Unique integer per row, likely an ID column"
			return
		}
		if col.hasDecimals {
			col.role = RoleMeasure
			return
		}
		// Few distinct integers relative to the row count → coded dimension
		// (years, ratings, priorities)
		uniqueRatio := float64(col.uniqueCount) / float64(rows)
		if col.uniqueCount < 20 && uniqueRatio < 0.3 {
			col.role = RoleDimension
			return
		}
		col.role = RoleMeasure

	case typeDate, typeBool:
		col.role = RoleDimension

	case typeString:
		if col.uniqueCount == rows && rows > 10 {
			col.role = RoleSkipped
			col.skipReason = "Unique per row, likely an identifier"
			return
		}
		if col.uniqueCount > rows/2 && col.uniqueCount > 50 {
			col.role = RoleSkipped
			col.skipReason = "High cardinality (" + strconv.Itoa(col.uniqueCount) + " unique values), not useful for grouping"
			return
		}
		col.role = RoleDimension
	}
}

// kind maps the detected type to the engine's column kind.
func (col *columnAnalysis) kind() engine.ColumnKind {
	switch col.colType {
	case typeNumeric:
		return engine.KindNumeric
	case typeDate:
		return engine.KindTemporal
	}
	return engine.KindCategorical
}

func (col *columnAnalysis) cardinalityHint() string {
	switch {
	case col.uniqueCount <= 10:
		return "low"
	case col.uniqueCount <= 100:
		return "medium"
	default:
		return "high"
	}
}

// toMeta converts a column analysis into ColumnMeta.
func (col *columnAnalysis) toMeta() ColumnMeta {
	k := col.kind()
	return ColumnMeta{
		Key:             col.header,
		DisplayName:     toDisplayName(col.header),
		Kind:            k,
		KindName:        k.String(),
		Role:            col.role,
		SkipReason:      col.skipReason,
		TimeLayout:      col.timeLayout,
		SampleValues:    col.sampleVals,
		Unique:          col.uniqueCount,
		Nulls:           col.nullCount,
		CardinalityHint: col.cardinalityHint(),
	}
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType inspects values to determine column type. Numeric and bool
// need 80%+ of non-null values to match; dates must all parse with one
// layout, which is returned.
func detectType(values []string) (columnType, string) {
	if len(values) == 0 {
		return typeString, ""
	}

	numCount := 0
	boolCount := 0
	for _, v := range values {
		if _, ok := ParseNumber(v); ok {
			numCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	if threshold < 1 {
		threshold = 1
	}

	if boolCount >= threshold {
		return typeBool, ""
	}
	if numCount >= threshold {
		return typeNumeric, ""
	}
	if layout := detectTimeLayout(values); layout != "" {
		return typeDate, layout
	}
	return typeString, ""
}

// TimeLayouts are the date formats discovery recognizes, most specific
// first. A bare year is left numeric.
var TimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan-2006",
	"January 2006",
	"2006-01",
}

// detectTimeLayout returns the first layout every value parses with.
func detectTimeLayout(values []string) string {
	for _, layout := range TimeLayouts {
		ok := true
		for _, v := range values {
			if _, err := time.Parse(layout, v); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return layout
		}
	}
	return ""
}

// ParseNumber reads a number the way discovery counts it as numeric:
// thousands separators and a leading currency symbol are ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimLeft(s, "$€£")
	s = strings.ReplaceAll(s, ",", "") // handle "1,234.56"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// IsNull reports whether s is one of the null markers discovery skips.
func IsNull(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "NULL", "N/A", "n/a":
		return true
	}
	return false
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "yes" || s == "no"
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

var titleCaser = cases.Title(language.English)

// toDisplayName cleans a header for human display.
// "story_points" → "Story Points", "lifeExp" → "Life Exp"
func toDisplayName(s string) string {
	// If already has spaces, just trim
	if strings.Contains(strings.TrimSpace(s), " ") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	prev := rune(0)
	for _, r := range s {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case isUpper(r) && (isLower(prev) || isDigit(prev)):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return titleCaser.String(strings.Join(strings.Fields(b.String()), " "))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
