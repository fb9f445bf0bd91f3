package schema

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/express/engine"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// ============================================================================
// DISCOVERY TESTS
// ============================================================================

// Sample Jira CSV export
var jiraCSV = []byte(`Issue Key,Summary,Status,Priority,Issue Type,Assignee,Component,Sprint,Story Points,Time Spent Hours,Created,Resolved
PROJ-101,Login timeout on mobile,In Progress,P1 - Critical,Bug,alice@corp.com,Backend,Sprint 17,5,12.5,2026-01-15,
PROJ-102,Dashboard crash on Safari,To Do,P2 - High,Bug,bob@corp.com,Frontend,Sprint 17,3,0,2026-01-16,
PROJ-103,Add dark mode toggle,Done,P3 - Medium,Story,charlie@corp.com,Frontend,Sprint 16,8,16,2026-01-10,2026-01-20
PROJ-104,Update user docs,In Review,P4 - Low,Task,alice@corp.com,Documentation,Sprint 17,2,4,2026-01-18,
PROJ-105,Payment fails with expired card,In Progress,P1 - Critical,Bug,dave@corp.com,Backend,Sprint 17,8,20,2026-01-12,
PROJ-106,Optimize DB queries,Done,P2 - High,Task,eve@corp.com,Backend,Sprint 16,5,10,2026-01-08,2026-01-15
PROJ-107,Mobile push notifications,To Do,P2 - High,Story,frank@corp.com,Mobile,Sprint 18,13,0,2026-01-20,
PROJ-108,Fix memory leak in worker,In Progress,P1 - Critical,Bug,alice@corp.com,Infrastructure,Sprint 17,5,8,2026-01-14,
PROJ-109,Redesign settings page,Done,P3 - Medium,Story,bob@corp.com,Frontend,Sprint 15,8,14,2026-01-05,2026-01-12
PROJ-110,API rate limiting,Done,P2 - High,Story,charlie@corp.com,Backend,Sprint 16,5,9,2026-01-09,2026-01-18
PROJ-111,Add export to CSV,To Do,P3 - Medium,Story,dave@corp.com,Backend,Sprint 18,3,0,2026-01-22,
PROJ-112,Update SSL certs,Done,P1 - Critical,Task,eve@corp.com,Infrastructure,Sprint 16,1,2,2026-01-07,2026-01-07
`)

// Sample Finance CSV
var financeCSV = []byte(`Month,Location,Category,Field,Currency,Amount
Jan-2026,Singapore,Income,Salary,SGD,8500.00
Jan-2026,Singapore,Expense,Rent,SGD,2200.00
Jan-2026,Singapore,Expense,Groceries,SGD,450.00
Jan-2026,Singapore,Expense,Transport,SGD,120.00
Jan-2026,India,Income,Rental Income,INR,25000.00
Jan-2026,India,Expense,Property Tax,INR,5000.00
Feb-2026,Singapore,Income,Salary,SGD,8500.00
Feb-2026,Singapore,Expense,Rent,SGD,2200.00
Feb-2026,Singapore,Expense,Internet,SGD,49.90
Feb-2026,India,Transfer,ToIndia,INR,50000.00
`)

// Gapminder-style extract with an integer row id
var countriesCSV = []byte(`id,country,continent,year,lifeExp,pop
1,Kenya,Africa,2000,52.1,31
2,Kenya,Africa,2010,60.3,41
3,Ghana,Africa,2000,57.0,19
4,Ghana,Africa,2010,61.2,24
5,Peru,Americas,2000,70.5,26
6,Peru,Americas,2010,74.1,29
7,Chile,Americas,2000,76.8,15
8,Chile,Americas,2010,78.9,19
9,India,Asia,2000,62.5,1050
10,India,Asia,2010,66.7,1230
11,Japan,Asia,2000,81.1,127
12,Japan,Asia,2010,82.9,128
`)

func TestDiscoverJiraCSV(t *testing.T) {
	config, err := DiscoverFromCSV(jiraCSV)
	require.NoError(t, err)

	assert.Equal(t, 12, config.Rows)
	assert.Equal(t, "CSV", config.DiscoveredFrom)
	assert.Equal(t, "Auto-discovered Dataset", config.Name)
	require.Len(t, config.Columns, 12)

	assert.Equal(t, []string{"Issue Key", "Summary"}, config.SkippedKeys())
	assert.Equal(t, []string{"Story Points", "Time Spent Hours"}, config.MeasureKeys())
	assert.Equal(t, "Story Points", config.DefaultMeasure())

	dims := config.DimensionKeys()
	for _, key := range []string{"Status", "Priority", "Issue Type", "Assignee", "Component", "Sprint", "Created", "Resolved"} {
		assert.Contains(t, dims, key)
	}

	created := config.Column("Created")
	require.NotNil(t, created)
	assert.Equal(t, engine.KindTemporal, created.Kind)
	assert.Equal(t, "temporal", created.KindName)
	assert.Equal(t, "2006-01-02", created.TimeLayout)

	resolved := config.Column("Resolved")
	require.NotNil(t, resolved)
	assert.Equal(t, 7, resolved.Nulls)
	assert.Equal(t, engine.KindTemporal, resolved.Kind)

	status := config.Column("Status")
	require.NotNil(t, status)
	assert.Equal(t, engine.KindCategorical, status.Kind)
	assert.Equal(t, "low", status.CardinalityHint)
	assert.Equal(t, []string{"Done", "In Progress", "In Review", "To Do"}, status.SampleValues)

	assert.Nil(t, config.Column("Nope"))
}

func TestDiscoverFinanceCSV(t *testing.T) {
	config, err := DiscoverFromCSV(financeCSV, DiscoverOptions{Name: "Household"})
	require.NoError(t, err)

	assert.Equal(t, "Household", config.Name)
	assert.Equal(t, []string{"Amount"}, config.MeasureKeys())

	month := config.Column("Month")
	require.NotNil(t, month)
	assert.Equal(t, engine.KindTemporal, month.Kind)
	assert.Equal(t, "Jan-2006", month.TimeLayout)
	assert.Equal(t, RoleDimension, month.Role)

	amount := config.Column("Amount")
	require.NotNil(t, amount)
	assert.Equal(t, engine.KindNumeric, amount.Kind)
}

func TestDiscoverCountries(t *testing.T) {
	config, err := DiscoverFromCSV(countriesCSV)
	require.NoError(t, err)

	id := config.Column("id")
	require.NotNil(t, id)
	assert.Equal(t, RoleSkipped, id.Role)
	assert.Contains(t, id.SkipReason, "ID")

	// Few distinct integers: numeric kind, grouping role.
	year := config.Column("year")
	require.NotNil(t, year)
	assert.Equal(t, engine.KindNumeric, year.Kind)
	assert.Equal(t, RoleDimension, year.Role)

	assert.Equal(t, []string{"lifeExp", "pop"}, config.MeasureKeys())
}

func TestDiscoverEdgeCases(t *testing.T) {
	config, err := Discover(
		[]string{"flag", "empty", "n"},
		[][]string{{"yes", "", "1"}, {"no", "N/A", "2"}, {"yes"}, {"no", "null", "3"}},
		DiscoverOptions{SampleSize: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, config.Rows)

	flag := config.Column("flag")
	require.NotNil(t, flag)
	assert.Equal(t, engine.KindCategorical, flag.Kind)
	assert.Equal(t, RoleDimension, flag.Role)

	empty := config.Column("empty")
	require.NotNil(t, empty)
	assert.Equal(t, RoleSkipped, empty.Role)
	assert.Equal(t, 2, empty.Nulls)

	_, err = Discover([]string{"a", "a"}, nil)
	assert.Error(t, err)

	_, err = Discover(nil, nil)
	assert.Error(t, err)

	_, err = DiscoverFromCSV([]byte(""))
	assert.Error(t, err)

	_, err = DiscoverFromCSV([]byte("a,b\n\"unterminated,1\n"))
	assert.Error(t, err)
}

func TestConfigJSON(t *testing.T) {
	config, err := DiscoverFromCSV(financeCSV)
	require.NoError(t, err)

	raw, err := json.Marshal(config)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	cols := decoded["columns"].([]any)
	first := cols[0].(map[string]any)
	assert.Equal(t, "temporal", first["kind"])
	assert.Equal(t, "dimension", first["role"])
	assert.Equal(t, "Jan-2006", first["timeLayout"])
}

// ============================================================================
// VALUE HELPERS
// ============================================================================

func TestDisplayName(t *testing.T) {
	for in, want := range map[string]string{
		"story_points": "Story Points",
		"lifeExp":      "Life Exp",
		"sub-category": "Sub Category",
		"Issue Key":    "Issue Key",
		"pop":          "Pop",
		"gdp2Percap":   "Gdp2 Percap",
	} {
		assert.Equal(t, want, toDisplayName(in), in)
	}
}

func TestLabels(t *testing.T) {
	config, err := DiscoverFromCSV(countriesCSV)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"id":        "Id",
		"country":   "Country",
		"continent": "Continent",
		"year":      "Year",
		"lifeExp":   "Life Exp",
		"pop":       "Pop",
	}, config.Labels())

	config, err = DiscoverFromCSV(jiraCSV)
	require.NoError(t, err)
	assert.Empty(t, config.Labels())
}

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]float64{
		"42":        42,
		"$1,234.50": 1234.5,
		"-€3":       -3,
		" 0.25 ":    0.25,
		"£1e3":      1000,
	} {
		got, ok := ParseNumber(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", "12 apples", "$"} {
		_, ok := ParseNumber(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsNull(t *testing.T) {
	for _, s := range []string{"", "  ", "null", "NULL", "N/A", "n/a"} {
		assert.True(t, IsNull(s), s)
	}
	for _, s := range []string{"0", "NA", "none"} {
		assert.False(t, IsNull(s), s)
	}
}

func TestDetectType(t *testing.T) {
	for _, tc := range []struct {
		values []string
		want   columnType
		layout string
	}{
		{[]string{"1", "2", "3", "4", "x"}, typeNumeric, ""},
		{[]string{"1", "x", "y"}, typeString, ""},
		{[]string{"true", "false", "TRUE"}, typeBool, ""},
		{[]string{"2026-01-02T10:00:00Z", "2026-01-03T11:30:00Z"}, typeDate, "2006-01-02T15:04:05Z07:00"},
		{[]string{"01/02/2026", "12/31/2025"}, typeDate, "01/02/2006"},
		{[]string{"2026-01", "2026-02"}, typeDate, "2006-01"},
		{[]string{"2026-01-02", "soon"}, typeString, ""},
		{[]string{"1999", "2000"}, typeNumeric, ""},
	} {
		got, layout := detectType(tc.values)
		assert.Equal(t, tc.want, got, "%v", tc.values)
		assert.Equal(t, tc.layout, layout, "%v", tc.values)
	}
}

// ============================================================================
// SUGGEST TESTS
// ============================================================================

func TestSuggest(t *testing.T) {
	jira, err := DiscoverFromCSV(jiraCSV)
	require.NoError(t, err)

	for _, tc := range []struct {
		kind string
		want engine.Args
	}{
		{"scatter", engine.Args{X: "Story Points", Y: "Time Spent Hours", Color: "Status"}},
		{"line", engine.Args{X: "Created", Y: "Story Points", Color: "Status"}},
		{"bar", engine.Args{X: "Status", Y: "Story Points", Color: "Priority"}},
		{"scatter_polar", engine.Args{R: "Story Points", Theta: "Status", Color: "Priority"}},
		{"parallel_coordinates", engine.Args{Dimensions: []string{"Story Points", "Time Spent Hours"}}},
		{"parallel_categories", engine.Args{
			Dimensions: []string{"Status", "Priority", "Issue Type", "Assignee", "Component", "Sprint"},
		}},
	} {
		got, err := jira.Suggest(tc.kind)
		require.NoError(t, err, tc.kind)
		assert.Equal(t, tc.want, got, tc.kind)
	}

	hist, err := jira.Suggest("histogram")
	require.NoError(t, err)
	assert.Equal(t, "Story Points", hist.X)
	assert.Empty(t, hist.Y)
}

func TestSuggestGeo(t *testing.T) {
	finance, err := DiscoverFromCSV(financeCSV)
	require.NoError(t, err)

	got, err := finance.Suggest("choropleth")
	require.NoError(t, err)
	assert.Equal(t, engine.Args{Locations: "Location", Color: "Amount"}, got)

	points, err := Discover(
		[]string{"Latitude", "lng", "city", "visits"},
		[][]string{{"1.3", "103.8", "Singapore", "10.5"}, {"35.7", "139.7", "Tokyo", "7.25"}},
	)
	require.NoError(t, err)
	got, err = points.Suggest("scatter_mapbox")
	require.NoError(t, err)
	assert.Equal(t, "Latitude", got.Lat)
	assert.Equal(t, "lng", got.Lon)
	assert.Empty(t, got.Locations)
}

func TestSuggestBuilds(t *testing.T) {
	config, err := DiscoverFromCSV(countriesCSV)
	require.NoError(t, err)

	args, err := config.Suggest("scatter")
	require.NoError(t, err)
	assert.Equal(t, "lifeExp", args.X)
	assert.Equal(t, "pop", args.Y)
	assert.Equal(t, "country", args.Color)
}

func TestSuggestUnknownKind(t *testing.T) {
	config, err := DiscoverFromCSV(financeCSV)
	require.NoError(t, err)

	_, err = config.Suggest("pie")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrUnknownKind))
}
