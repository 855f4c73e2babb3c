// pkg/report/report_test.go
package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

func contactTable(rows []model.Row) *model.Table {
	t := model.NewTable([]model.Column{
		{Name: ColumnDate, Kind: model.KindText},
		{Name: ColumnDept, Kind: model.KindText},
		{Name: ColumnStaff, Kind: model.KindText},
		{Name: ColumnMethod, Kind: model.KindText},
		{Name: ColumnOutcome, Kind: model.KindText},
		{Name: ColumnDonor, Kind: model.KindText},
		{Name: ColumnReportID, Kind: model.KindText},
	})
	t.Rows = rows
	return t
}

func sampleReports() *model.Table {
	return contactTable([]model.Row{
		{ColumnDate: "01/15/18", ColumnDept: "Major Gifts", ColumnStaff: "Avery", ColumnMethod: "Call", ColumnOutcome: "Positive", ColumnDonor: "D1", ColumnReportID: "R1"},
		{ColumnDate: "2018-02-10", ColumnDept: "Major Gifts", ColumnStaff: "Avery", ColumnMethod: "Visit", ColumnOutcome: "Negative", ColumnDonor: "D2", ColumnReportID: "R2"},
		{ColumnDate: "2018/03/05", ColumnDept: "Major Gifts", ColumnStaff: "Blake", ColumnMethod: "Call", ColumnOutcome: "Positive", ColumnDonor: "D1", ColumnReportID: "R3"},
		{ColumnDate: "03/05/18", ColumnDept: "Major Gifts", ColumnStaff: "Blake", ColumnMethod: "Call", ColumnOutcome: "Positive", ColumnDonor: "D3", ColumnReportID: "R4"},
		{ColumnDate: "09/20/18", ColumnDept: "Major Gifts", ColumnStaff: "Avery", ColumnMethod: "Call", ColumnOutcome: "Positive", ColumnDonor: "D4", ColumnReportID: "R5"},
		{ColumnDate: "04/12/18", ColumnDept: "Annual Fund", ColumnStaff: "Casey", ColumnMethod: "Email", ColumnOutcome: "Negative", ColumnDonor: "D5", ColumnReportID: "R6"},
		{ColumnDate: "not-a-date", ColumnDept: "Major Gifts", ColumnStaff: "Blake", ColumnMethod: "Visit", ColumnOutcome: "Positive", ColumnDonor: "D6", ColumnReportID: "R7"},
	})
}

func newTestReporter(t *testing.T) *Reporter {
	t.Helper()
	r, err := NewReporter(zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestParseDates(t *testing.T) {
	r := newTestReporter(t)

	out, failures, err := r.ParseDates(sampleReports())
	require.NoError(t, err)

	require.Len(t, failures, 1)
	assert.Equal(t, 6, failures[0].RowIndex)
	assert.Equal(t, "not-a-date", failures[0].Input)
	assert.Equal(t, 1, r.Failures().Count())

	// Parsed rows carry a typed date and a month label
	assert.Equal(t, "January", out.Rows[0][ColumnMonth])
	date, ok := out.Rows[0][ColumnReportDate].(time.Time)
	require.True(t, ok)
	assert.True(t, date.Equal(time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC)))

	// The failed row stays in the table, flagged rather than dropped
	assert.Equal(t, 7, out.Len())
	assert.Nil(t, out.Rows[6][ColumnReportDate])
	assert.Nil(t, out.Rows[6][ColumnMonth])

	// Month column is an ordered calendar category
	month := out.ColumnByName(ColumnMonth)
	require.NotNil(t, month.Category)
	assert.True(t, month.Category.Ordered)
	assert.Less(t, month.Category.Index("April"), month.Category.Index("August"))
}

func TestFilterByGroup(t *testing.T) {
	r := newTestReporter(t)

	filtered, err := r.FilterByGroup(sampleReports(), "Major Gifts")
	require.NoError(t, err)
	assert.Equal(t, 6, filtered.Len())

	// No-match is valid, not an error
	empty, err := r.FilterByGroup(sampleReports(), "Planned Giving")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestSummaryByStaffAndType(t *testing.T) {
	r := newTestReporter(t)

	parsed, _, err := r.ParseDates(sampleReports())
	require.NoError(t, err)
	filtered, err := r.FilterByGroup(parsed, "Major Gifts")
	require.NoError(t, err)

	ct, err := r.SummaryByStaffAndType(filtered, "August")
	require.NoError(t, err)

	// September row and the unparseable row fall outside the period
	assert.Equal(t, []string{"Avery", "Blake"}, ct.Staff)
	assert.Equal(t, []string{"Call", "Visit"}, ct.Methods)
	assert.Equal(t, 1, ct.Cell("Avery", "Call"))
	assert.Equal(t, 1, ct.Cell("Avery", "Visit"))
	assert.Equal(t, 2, ct.Cell("Blake", "Call"))
	// Zero-filled, not missing
	assert.Equal(t, 0, ct.Cell("Blake", "Visit"))

	assert.Equal(t, 2, ct.RowTotals["Avery"])
	assert.Equal(t, 2, ct.RowTotals["Blake"])
	assert.Equal(t, 3, ct.ColTotals["Call"])
	assert.Equal(t, 1, ct.ColTotals["Visit"])

	// Grand total equals the sum of all per-staff-per-method counts
	sum := 0
	for _, staff := range ct.Staff {
		for _, method := range ct.Methods {
			sum += ct.Cell(staff, method)
		}
	}
	assert.Equal(t, sum, ct.GrandTotal)
	assert.Equal(t, 4, ct.GrandTotal)
}

func TestSummaryByStaffAndTypeCalendarCutoff(t *testing.T) {
	r := newTestReporter(t)

	parsed, _, err := r.ParseDates(sampleReports())
	require.NoError(t, err)

	// September sorts before "August" lexically; calendar order must win
	ct, err := r.SummaryByStaffAndType(parsed, "September")
	require.NoError(t, err)
	assert.Equal(t, 6, ct.GrandTotal)

	ct, err = r.SummaryByStaffAndType(parsed, "January")
	require.NoError(t, err)
	assert.Equal(t, 1, ct.GrandTotal)
}

func TestSummaryByStaffAndTypeUnknownPeriod(t *testing.T) {
	r := newTestReporter(t)

	parsed, _, err := r.ParseDates(sampleReports())
	require.NoError(t, err)

	_, err = r.SummaryByStaffAndType(parsed, "Augustus")
	var argErr *model.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "endPeriod", argErr.Argument)
}

func TestSummaryByStaffAndTypeEmptyGroup(t *testing.T) {
	r := newTestReporter(t)

	parsed, _, err := r.ParseDates(sampleReports())
	require.NoError(t, err)
	empty, err := r.FilterByGroup(parsed, "Planned Giving")
	require.NoError(t, err)

	ct, err := r.SummaryByStaffAndType(empty, "August")
	require.NoError(t, err)
	assert.Empty(t, ct.Staff)
	assert.Empty(t, ct.Methods)
	assert.Equal(t, 0, ct.GrandTotal)
}

func TestReachAndOutcomes(t *testing.T) {
	r := newTestReporter(t)

	filtered, err := r.FilterByGroup(sampleReports(), "Major Gifts")
	require.NoError(t, err)

	outcomes, err := r.ReachAndOutcomes(filtered)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	avery := outcomes[0]
	assert.Equal(t, "Avery", avery.Staff)
	assert.Equal(t, 3, avery.Reports)
	assert.Equal(t, 3, avery.UniqueDonors)
	assert.Equal(t, 2, avery.Positive)
	assert.Equal(t, 1, avery.Negative)

	blake := outcomes[1]
	assert.Equal(t, "Blake", blake.Staff)
	assert.Equal(t, 3, blake.Reports)
	assert.Equal(t, 3, blake.UniqueDonors)
	assert.Equal(t, 3, blake.Positive)
	// Zero negatives report 0, not missing
	assert.Equal(t, 0, blake.Negative)
}

func TestCumulativeActivity(t *testing.T) {
	r := newTestReporter(t)

	parsed, _, err := r.ParseDates(sampleReports())
	require.NoError(t, err)
	filtered, err := r.FilterByGroup(parsed, "Major Gifts")
	require.NoError(t, err)

	points, err := r.CumulativeActivity(filtered)
	require.NoError(t, err)

	// Blake filed two reports on the same date; they collapse into one
	// point with count 2. The unparseable row contributes nothing.
	var blake []ActivityPoint
	for _, p := range points {
		if p.Staff == "Blake" {
			blake = append(blake, p)
		}
	}
	require.Len(t, blake, 1)
	assert.Equal(t, 2, blake[0].Count)
	assert.Equal(t, 2, blake[0].Cumulative)

	var avery []ActivityPoint
	for _, p := range points {
		if p.Staff == "Avery" {
			avery = append(avery, p)
		}
	}
	require.Len(t, avery, 3)
	// Dates ascend and the running sum accumulates
	for i := 1; i < len(avery); i++ {
		assert.True(t, avery[i-1].Date.Before(avery[i].Date))
		assert.Equal(t, avery[i-1].Cumulative+avery[i].Count, avery[i].Cumulative)
	}
	assert.Equal(t, 3, avery[len(avery)-1].Cumulative)
}

func TestAverageReportsPerStaff(t *testing.T) {
	r := newTestReporter(t)

	// Computed over all staff, not just the filtered group:
	// Avery 3, Blake 3, Casey 1 -> mean 7/3
	avg, err := r.AverageReportsPerStaff(sampleReports())
	require.NoError(t, err)
	assert.InDelta(t, 7.0/3.0, avg, 1e-12)

	empty := contactTable(nil)
	avg, err = r.AverageReportsPerStaff(empty)
	require.NoError(t, err)
	assert.Zero(t, avg)
}
