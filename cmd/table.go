package cmd

import (
	"io"
	"strconv"
	"strings"

	"github.com/luminox/luminox/pkg/format"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// startSpinner shows an indeterminate spinner until the returned func is called.
func startSpinner(w io.Writer, description string) func() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.Add(1)
	return func() { _ = bar.Finish() }
}

// oneLine flattens text for a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func optional[T any](p *T, render func(T) string) string {
	if p == nil {
		return format.Placeholder
	}
	return render(*p)
}
