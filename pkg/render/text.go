// pkg/render/text.go
package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/advancementlab/donorpipe/pkg/report"
)

// TotalsLabel names the row/column totals of a rendered cross-tab
const TotalsLabel = "Totals"

// WriteCrossTab renders a staff-by-method cross-tab as a text table,
// with per-row totals in the last column and column totals plus the
// grand total in the footer
func WriteCrossTab(w io.Writer, ct *report.CrossTab) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	header := append([]string{"Staff"}, ct.Methods...)
	header = append(header, TotalsLabel)
	table.SetHeader(header)

	for _, staff := range ct.Staff {
		row := []string{staff}
		for _, method := range ct.Methods {
			row = append(row, strconv.Itoa(ct.Cell(staff, method)))
		}
		row = append(row, strconv.Itoa(ct.RowTotals[staff]))
		table.Append(row)
	}

	footer := []string{TotalsLabel}
	for _, method := range ct.Methods {
		footer = append(footer, strconv.Itoa(ct.ColTotals[method]))
	}
	footer = append(footer, strconv.Itoa(ct.GrandTotal))
	table.SetFooter(footer)

	table.Render()
}

// WriteReachAndOutcomes renders per-staff reach and outcome counts
func WriteReachAndOutcomes(w io.Writer, outcomes []report.StaffOutcome) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Staff", "Reports", "Unique Donors", "Positive", "Negative"})

	for _, o := range outcomes {
		table.Append([]string{
			o.Staff,
			strconv.Itoa(o.Reports),
			strconv.Itoa(o.UniqueDonors),
			strconv.Itoa(o.Positive),
			strconv.Itoa(o.Negative),
		})
	}

	table.Render()
}

// WriteCumulativeActivity renders each staff member's running report
// count over time
func WriteCumulativeActivity(w io.Writer, points []report.ActivityPoint) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Staff", "Date", "Reports", "Cumulative"})

	for _, p := range points {
		table.Append([]string{
			p.Staff,
			p.Date.Format("2006-01-02"),
			strconv.Itoa(p.Count),
			strconv.Itoa(p.Cumulative),
		})
	}

	table.Render()
}
