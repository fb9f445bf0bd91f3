package engine

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// tableView parses csvText into a go-gg backed view, coercing numeric
// columns the way the CSV loader does.
func tableView(t *testing.T, csvText string) *TableView {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(strings.TrimSpace(csvText))).ReadAll()
	require.NoError(t, err)
	return NewTableView(table.TableFromStrings(rows[0], rows[1:], true))
}

// Scenario dataset: one categorical and one numeric column.
const categoryCSV = `
category,value
a,1
b,2
a,3
`

// Gapminder-like sample for facets, animation and trendlines.
const countriesCSV = `
country,continent,year,gdp,life_exp,pop
Kenya,Africa,2000,1200,52.1,31
Kenya,Africa,2010,1500,58.5,41
Ghana,Africa,2000,1100,57.0,19
Ghana,Africa,2010,1650,60.7,24
Peru,Americas,2000,4900,70.5,26
Peru,Americas,2010,8700,74.6,29
Chile,Americas,2000,9800,77.3,15
Chile,Americas,2010,12500,79.1,17
India,Asia,2000,1000,62.5,1050
India,Asia,2010,1900,66.6,1230
Japan,Asia,2000,27000,81.1,127
Japan,Asia,2010,31000,83.0,128
`

// groupingSpy records whether the dataset's group-by primitive ran.
type groupingSpy struct {
	RecordView
	calls int
}

func (s *groupingSpy) GroupRows(columns []string) ([]RowGroup, error) {
	s.calls++
	return scanGroups(s.RecordView, columns), nil
}

func layoutObject(t *testing.T, o Object, key string) Object {
	t.Helper()
	sub, ok := o[key].(Object)
	require.Truef(t, ok, "layout[%q] is %T, want Object", key, o[key])
	return sub
}
