package helpers

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"

	"github.com/spektr-org/express/engine"
	"github.com/spektr-org/express/schema"
)

// ============================================================================
// CSV HELPER — Parses CSV data into a typed go-gg table
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, Sheets).
// This helper discovers the schema, then types every column by its kind:
//   numeric     → []int when every value is an integer, else []float64
//                 with NaN for nulls and unparseable cells
//   temporal    → []time.Time, parsed with the discovered layout
//   categorical → []string
// A temporal column holding nulls stays []string: a zero time would plot
// as year 1.
// ============================================================================

// LoadCSV reads the CSV file at path.
func LoadCSV(path string, opts ...schema.DiscoverOptions) (*engine.TableView, *schema.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return ParseCSV(data, opts...)
}

// ReadCSV reads CSV data from r.
func ReadCSV(r io.Reader, opts ...schema.DiscoverOptions) (*engine.TableView, *schema.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV")
	}
	return ParseCSV(data, opts...)
}

// ParseCSV parses CSV bytes into a table view and its discovered schema.
func ParseCSV(data []byte, opts ...schema.DiscoverOptions) (*engine.TableView, *schema.Config, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV headers")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to read CSV row %d", len(rows)+1)
		}
		rows = append(rows, row)
	}

	sch, err := schema.Discover(headers, rows, opts...)
	if err != nil {
		return nil, nil, err
	}
	sch.DiscoveredFrom = "CSV"

	b := table.NewBuilder(nil)
	for i, h := range headers {
		cells := column(rows, i)
		meta := sch.Column(h)
		switch meta.Kind {
		case engine.KindNumeric:
			b.Add(h, numericColumn(cells))
		case engine.KindTemporal:
			if ts, ok := temporalColumn(cells, meta.TimeLayout); ok {
				b.Add(h, ts)
			} else {
				log.Printf("📄 CSV: %q has nulls, loading as text", h)
				b.Add(h, cells)
			}
		default:
			b.Add(h, cells)
		}
	}

	log.Printf("📄 CSV: loaded %d rows × %d columns", len(rows), len(headers))
	return engine.NewTableView(b.Done()), sch, nil
}

// column extracts trimmed cells; short rows read as "".
func column(rows [][]string, index int) []string {
	out := make([]string, len(rows))
	for r, row := range rows {
		if index < len(row) {
			out[r] = strings.TrimSpace(row[index])
		}
	}
	return out
}

func numericColumn(cells []string) any {
	fs := make([]float64, len(cells))
	integral := true
	for i, c := range cells {
		f, ok := schema.ParseNumber(c)
		if schema.IsNull(c) || !ok {
			fs[i] = math.NaN()
			integral = false
			continue
		}
		fs[i] = f
		if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			integral = false
		}
	}
	if !integral {
		return fs
	}
	ints := make([]int, len(fs))
	for i, f := range fs {
		ints[i] = int(f)
	}
	return ints
}

func temporalColumn(cells []string, layout string) ([]time.Time, bool) {
	out := make([]time.Time, len(cells))
	for i, c := range cells {
		t, err := time.Parse(layout, c)
		if err != nil {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}
