// pkg/report/report.go
package report

import (
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// Contact-report column names
const (
	ColumnDate     = "date"
	ColumnDept     = "dept"
	ColumnStaff    = "staffName"
	ColumnMethod   = "method"
	ColumnOutcome  = "outcome"
	ColumnDonor    = "donor"
	ColumnReportID = "reportID"

	// ColumnReportDate holds the parsed calendar date added by ParseDates
	ColumnReportDate = "reportDate"
	// ColumnMonth holds the derived month label added by ParseDates
	ColumnMonth = "month"

	// OutcomePositive and OutcomeNegative are the pivoted outcome labels
	OutcomePositive = "Positive"
	OutcomeNegative = "Negative"
)

// Reporter produces grouped summary tables and time-series aggregates
// from a cleaned contact-report table, parameterized by an end period
// and a staff group
type Reporter struct {
	logger   *zap.Logger
	failures *FailureCollector
}

// NewReporter creates a new Reporter
func NewReporter(logger *zap.Logger) (*Reporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	named := logger.Named("reporter")
	return &Reporter{
		logger:   named,
		failures: NewFailureCollector(named, 25),
	}, nil
}

// Failures returns the parse-failure collector for this reporter
func (r *Reporter) Failures() *FailureCollector {
	return r.failures
}

// ParseDates parses the textual date column once, adds a typed
// reportDate column and an ordered month category column, and collects
// a ParseFailure per row whose date matches none of the formats.
// Failed rows stay in the table with a missing reportDate; time-based
// aggregates skip them.
func (r *Reporter) ParseDates(t *model.Table) (*model.Table, []model.ParseFailure, error) {
	if !t.HasColumn(ColumnDate) {
		return nil, nil, model.NewSchemaError(ColumnDate)
	}

	out := t.Clone()
	if !out.HasColumn(ColumnReportDate) {
		out.Columns = append(out.Columns, model.Column{Name: ColumnReportDate, Kind: model.KindDate})
	}
	if !out.HasColumn(ColumnMonth) {
		out.Columns = append(out.Columns, model.Column{
			Name:     ColumnMonth,
			Kind:     model.KindCategory,
			Category: model.MonthCategory(),
		})
	}

	var failures []model.ParseFailure
	for i, row := range out.Rows {
		raw := model.ToString(row[ColumnDate])
		parsed, ok := ParseDate(raw)
		if !ok {
			row[ColumnReportDate] = nil
			row[ColumnMonth] = nil
			failure := model.ParseFailure{
				RowIndex:  i,
				Column:    ColumnDate,
				Input:     raw,
				Timestamp: time.Now(),
			}
			failures = append(failures, failure)
			r.failures.Record(failure)
			continue
		}
		row[ColumnReportDate] = parsed
		row[ColumnMonth] = MonthOf(parsed)
	}

	r.logger.Info("Parsed report dates",
		zap.Int("rows", out.Len()),
		zap.Int("parseFailures", len(failures)))
	return out, failures, nil
}

// FilterByGroup returns the rows whose department equals group. Zero
// matches is valid and yields an empty table, not an error.
func (r *Reporter) FilterByGroup(t *model.Table, group string) (*model.Table, error) {
	if !t.HasColumn(ColumnDept) {
		return nil, model.NewSchemaError(ColumnDept)
	}

	out := t.CloneSchema()
	for _, row := range t.Rows {
		if model.ToString(row[ColumnDept]) != group {
			continue
		}
		cloned := make(model.Row, len(row))
		for k, v := range row {
			cloned[k] = v
		}
		out.Rows = append(out.Rows, cloned)
	}

	r.logger.Debug("Filtered by group",
		zap.String("group", group),
		zap.Int("matched", out.Len()))
	return out, nil
}

// CrossTab is a staff-by-method count table with row, column, and
// grand totals, consistent with a cross-tabulation: the grand total
// equals the sum of all counts.
type CrossTab struct {
	Staff      []string                  // Row order
	Methods    []string                  // Column order
	Counts     map[string]map[string]int // staff -> method -> count, zero-filled
	RowTotals  map[string]int
	ColTotals  map[string]int
	GrandTotal int
}

// Cell returns the count for a staff/method pair, 0 when absent
func (ct *CrossTab) Cell(staff, method string) int {
	if methods, ok := ct.Counts[staff]; ok {
		return methods[method]
	}
	return 0
}

// SummaryByStaffAndType restricts the table to rows whose month falls
// on or before endPeriod in calendar order, then pivots it into a
// staff-by-method count cross-tab. endPeriod must be one of the
// twelve month labels.
func (r *Reporter) SummaryByStaffAndType(t *model.Table, endPeriod string) (*CrossTab, error) {
	months := model.MonthCategory()
	cutoff := months.Index(endPeriod)
	if cutoff < 0 {
		return nil, model.NewInvalidArgumentError("endPeriod", endPeriod, "not a calendar month label")
	}
	for _, required := range []string{ColumnStaff, ColumnMethod, ColumnMonth} {
		if !t.HasColumn(required) {
			return nil, model.NewSchemaError(required)
		}
	}

	counts := make(map[string]map[string]int)
	methodSet := make(map[string]struct{})
	for _, row := range t.Rows {
		if model.IsMissing(row[ColumnMonth]) {
			continue
		}
		monthIdx := months.Index(model.ToString(row[ColumnMonth]))
		if monthIdx < 0 || monthIdx > cutoff {
			continue
		}

		staff := model.ToString(row[ColumnStaff])
		method := model.ToString(row[ColumnMethod])
		if counts[staff] == nil {
			counts[staff] = make(map[string]int)
		}
		counts[staff][method]++
		methodSet[method] = struct{}{}
	}

	ct := &CrossTab{
		Counts:    counts,
		RowTotals: make(map[string]int),
		ColTotals: make(map[string]int),
	}
	for staff := range counts {
		ct.Staff = append(ct.Staff, staff)
	}
	sort.Strings(ct.Staff)
	for method := range methodSet {
		ct.Methods = append(ct.Methods, method)
	}
	sort.Strings(ct.Methods)

	// Zero-fill so a staff member with no reports in a method shows 0,
	// not missing, then derive the totals.
	for _, staff := range ct.Staff {
		for _, method := range ct.Methods {
			count := counts[staff][method]
			counts[staff][method] = count // materialize the zero
			ct.RowTotals[staff] += count
			ct.ColTotals[method] += count
			ct.GrandTotal += count
		}
	}

	r.logger.Info("Built staff-by-method summary",
		zap.String("endPeriod", endPeriod),
		zap.Int("staff", len(ct.Staff)),
		zap.Int("methods", len(ct.Methods)),
		zap.Int("grandTotal", ct.GrandTotal))
	return ct, nil
}

// StaffOutcome summarizes one staff member's reach and outcomes
type StaffOutcome struct {
	Staff        string
	Reports      int
	UniqueDonors int
	Positive     int
	Negative     int
}

// ReachAndOutcomes groups the table by staff identity and reports the
// report count, distinct donor count, and positive/negative outcome
// counts per staff member. Staff with zero positive (or negative)
// outcomes report 0, not missing.
func (r *Reporter) ReachAndOutcomes(t *model.Table) ([]StaffOutcome, error) {
	for _, required := range []string{ColumnStaff, ColumnDonor, ColumnOutcome} {
		if !t.HasColumn(required) {
			return nil, model.NewSchemaError(required)
		}
	}

	type accumulator struct {
		reports  int
		donors   map[string]struct{}
		positive int
		negative int
	}
	byStaff := make(map[string]*accumulator)

	for _, row := range t.Rows {
		staff := model.ToString(row[ColumnStaff])
		acc := byStaff[staff]
		if acc == nil {
			acc = &accumulator{donors: make(map[string]struct{})}
			byStaff[staff] = acc
		}
		acc.reports++
		if !model.IsMissing(row[ColumnDonor]) {
			acc.donors[model.ToString(row[ColumnDonor])] = struct{}{}
		}
		switch model.ToString(row[ColumnOutcome]) {
		case OutcomePositive:
			acc.positive++
		case OutcomeNegative:
			acc.negative++
		}
	}

	outcomes := make([]StaffOutcome, 0, len(byStaff))
	for staff, acc := range byStaff {
		outcomes = append(outcomes, StaffOutcome{
			Staff:        staff,
			Reports:      acc.reports,
			UniqueDonors: len(acc.donors),
			Positive:     acc.positive,
			Negative:     acc.negative,
		})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Staff < outcomes[j].Staff
	})

	return outcomes, nil
}

// ActivityPoint is one step of a staff member's cumulative report series
type ActivityPoint struct {
	Staff      string
	Date       time.Time
	Count      int // Reports filed on this date
	Cumulative int // Running total through this date
}

// CumulativeActivity counts reports per staff per date, sorts each
// staff series by date ascending, and carries a running sum over the
// date order. Rows without a parsed date are skipped.
func (r *Reporter) CumulativeActivity(t *model.Table) ([]ActivityPoint, error) {
	for _, required := range []string{ColumnStaff, ColumnReportDate} {
		if !t.HasColumn(required) {
			return nil, model.NewSchemaError(required)
		}
	}

	type dateCount struct {
		date  time.Time
		count int
	}
	byStaff := make(map[string]map[time.Time]int)
	for _, row := range t.Rows {
		if model.IsMissing(row[ColumnReportDate]) {
			continue
		}
		date, err := model.ToTime(row[ColumnReportDate])
		if err != nil {
			continue
		}
		staff := model.ToString(row[ColumnStaff])
		if byStaff[staff] == nil {
			byStaff[staff] = make(map[time.Time]int)
		}
		byStaff[staff][date]++
	}

	staffNames := make([]string, 0, len(byStaff))
	for staff := range byStaff {
		staffNames = append(staffNames, staff)
	}
	sort.Strings(staffNames)

	var points []ActivityPoint
	for _, staff := range staffNames {
		series := make([]dateCount, 0, len(byStaff[staff]))
		for date, count := range byStaff[staff] {
			series = append(series, dateCount{date: date, count: count})
		}
		sort.Slice(series, func(i, j int) bool {
			return series[i].date.Before(series[j].date)
		})

		cumulative := 0
		for _, dc := range series {
			cumulative += dc.count
			points = append(points, ActivityPoint{
				Staff:      staff,
				Date:       dc.date,
				Count:      dc.count,
				Cumulative: cumulative,
			})
		}
	}

	return points, nil
}

// AverageReportsPerStaff returns the mean total report count per staff
// member across the whole table. It is meant as a reference line, so
// it is computed over all staff, never over a filtered group.
func (r *Reporter) AverageReportsPerStaff(t *model.Table) (float64, error) {
	if !t.HasColumn(ColumnStaff) {
		return 0, model.NewSchemaError(ColumnStaff)
	}

	countsByStaff := make(map[string]int)
	for _, row := range t.Rows {
		countsByStaff[model.ToString(row[ColumnStaff])]++
	}
	if len(countsByStaff) == 0 {
		return 0, nil
	}

	counts := make([]float64, 0, len(countsByStaff))
	for _, count := range countsByStaff {
		counts = append(counts, float64(count))
	}
	return stat.Mean(counts, nil), nil
}
