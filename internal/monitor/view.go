package monitor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Alignment of a rendered column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ShortIDLen is how many characters of a tablet id are shown when truncated.
const ShortIDLen = 12

// Column names shared by the tall and wide layouts.
const (
	ColMetric   = "metric"
	ColValue    = "value"
	ColTabletID = "tablet-id"
	ColTable    = "table"
	ColHost     = "host"
)

// Table is a renderer-agnostic result: headers, per-column alignment, data
// rows and an optional total row.
type Table struct {
	Headers []string
	Align   []Alignment
	Rows    [][]string
	Total   []string
}

// MetricFilter selects metric names (after simplification) for display.
type MetricFilter interface {
	Match(name string) bool
}

// RegexFilter matches names against a regular expression anchored at the
// start of the name.
type RegexFilter struct {
	re *regexp.Regexp
}

// NewRegexFilter compiles pattern as a start-anchored filter.
func NewRegexFilter(pattern string) (*RegexFilter, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return &RegexFilter{re: re}, nil
}

func (f *RegexFilter) Match(name string) bool {
	return f.re.MatchString(name)
}

// MatchAll accepts every metric.
type MatchAll struct{}

func (MatchAll) Match(string) bool { return true }

// RenderOptions control row selection and formatting.
type RenderOptions struct {
	Filter MetricFilter
	FullID bool
	// Top keeps the N highest rows of a single-metric table; 0 keeps all.
	Top int
}

func (o RenderOptions) filter() MetricFilter {
	if o.Filter == nil {
		return MatchAll{}
	}
	return o.Filter
}

// SimplifyMetricName strips the rocksdb prefixes.
func SimplifyMetricName(name string) string {
	name = strings.ReplaceAll(name, "rocksdb_number_", "")
	return strings.ReplaceAll(name, "rocksdb_", "")
}

// DisplayID shortens a tablet id to at most ShortIDLen characters followed
// by an ellipsis. Ids are returned unchanged when full is set.
func DisplayID(id string, full bool) string {
	if full {
		return id
	}
	if len(id) > ShortIDLen {
		id = id[:ShortIDLen]
	}
	return id + "..."
}

// FormatValue renders a metric value without exponent or trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type tallRow struct {
	metric string
	value  float64
	id     string
	table  string
	host   string
}

// RenderTall lays out one row per (tablet, metric). Rows follow sorted
// tablet id then metric name. When exactly one metric survives the filter,
// rows are sorted by value descending and cut to opts.Top.
// Returns nil when nothing matches.
func RenderTall(entities map[string]Entity, opts RenderOptions) *Table {
	filter := opts.filter()
	keys := make(map[string]bool)
	var rows []tallRow

	for _, id := range sortedKeys(entities) {
		e := entities[id]
		for _, raw := range sortedKeys(e.Metrics) {
			name := SimplifyMetricName(raw)
			if !filter.Match(name) {
				continue
			}
			keys[name] = true
			rows = append(rows, tallRow{
				metric: name,
				value:  e.Metrics[raw],
				id:     DisplayID(id, opts.FullID),
				table:  e.Table,
				host:   e.Host,
			})
		}
	}

	if len(rows) == 0 {
		return nil
	}

	if len(keys) == 1 {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })
		rows = truncate(rows, opts.Top)
	}

	t := &Table{
		Headers: []string{ColMetric, ColValue, ColTabletID, ColTable, ColHost},
		Align:   []Alignment{AlignRight, AlignCenter, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.metric, FormatValue(r.value), r.id, r.table, r.host})
	}
	return t
}

type wideRow struct {
	id      string
	table   string
	host    string
	metrics map[string]float64
}

// RenderWide lays out one row per tablet with a column per matching metric.
// Rows are sorted by table; a single metric column re-sorts by value
// descending and applies opts.Top. With more than one row a total row sums
// each metric column. Metrics a tablet did not report render blank.
// Returns nil when there are no rows or no metric columns.
func RenderWide(entities map[string]Entity, opts RenderOptions) *Table {
	filter := opts.filter()
	keys := make(map[string]bool)
	var rows []wideRow

	for _, id := range sortedKeys(entities) {
		e := entities[id]
		row := wideRow{
			id:      DisplayID(id, opts.FullID),
			table:   e.Table,
			host:    e.Host,
			metrics: make(map[string]float64),
		}
		for _, raw := range sortedKeys(e.Metrics) {
			name := SimplifyMetricName(raw)
			if filter.Match(name) {
				row.metrics[name] = e.Metrics[raw]
				keys[name] = true
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 || len(keys) == 0 {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].table < rows[j].table })

	columns := sortedKeys(keys)
	if len(columns) == 1 {
		k := columns[0]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].metrics[k] > rows[j].metrics[k] })
		rows = truncate(rows, opts.Top)
	}

	t := &Table{
		Headers: append([]string{ColTabletID, ColTable, ColHost}, columns...),
		Align:   []Alignment{AlignLeft, AlignLeft, AlignLeft},
	}
	for range columns {
		t.Align = append(t.Align, AlignRight)
	}

	for _, r := range rows {
		cells := []string{r.id, r.table, r.host}
		for _, k := range columns {
			if v, ok := r.metrics[k]; ok {
				cells = append(cells, FormatValue(v))
			} else {
				cells = append(cells, "")
			}
		}
		t.Rows = append(t.Rows, cells)
	}

	if len(rows) > 1 {
		t.Total = totalRow(rows, columns)
	}
	return t
}

// totalRow sums every metric column, treating missing values as zero. The
// host cell carries a marker as wide as the longest host.
func totalRow(rows []wideRow, columns []string) []string {
	longest := 0
	for _, r := range rows {
		longest = max(longest, len(r.host))
	}

	total := []string{"", "", strings.Repeat(">", max(longest-8, 0)) + " total ="}
	for _, k := range columns {
		sum := 0.0
		for _, r := range rows {
			sum += r.metrics[k]
		}
		total = append(total, FormatValue(sum))
	}
	return total
}

// RenderTablets lists every tablet with its table and leader flag, sorted
// by table then tablet id.
func RenderTablets(entities map[string]Entity) *Table {
	ids := sortedKeys(entities)
	sort.SliceStable(ids, func(i, j int) bool {
		return entities[ids[i]].Table < entities[ids[j]].Table
	})

	t := &Table{
		Headers: []string{ColTable, "tablet", "leader"},
		Align:   []Alignment{AlignLeft, AlignLeft, AlignCenter},
	}
	for _, id := range ids {
		e := entities[id]
		t.Rows = append(t.Rows, []string{e.Table, id, FormatValue(e.Metrics[LeaderMetric])})
	}
	return t
}

func truncate[T any](rows []T, top int) []T {
	if top > 0 && len(rows) > top {
		return rows[:top]
	}
	return rows
}
