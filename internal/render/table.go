package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"bmicalc/internal/bmi"
	"bmicalc/internal/history"

	"github.com/shopspring/decimal"
)

// ReferenceRow 是静态分类参考表的一行。
type ReferenceRow struct {
	Category bmi.Category `json:"category"`
	Label    string       `json:"label"`
	Range    string       `json:"range"`
	Color    string       `json:"color"`
}

// ReferenceRows returns the four bands in ascending order.
func ReferenceRows() []ReferenceRow {
	cats := bmi.Categories()
	rows := make([]ReferenceRow, len(cats))
	for i, info := range cats {
		rows[i] = ReferenceRow{
			Category: info.Category,
			Label:    info.Label,
			Range:    info.Range,
			Color:    info.Color,
		}
	}
	return rows
}

// RenderReferenceTable 以纯文本形式输出分类参考表。
func RenderReferenceTable(rows []ReferenceRow) string {
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Category\tBMI Range\tColor")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, row.Range, row.Color)
	}
	_ = tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// RenderHistoryTable 以纯文本形式输出历史记录（序号、BMI、分类）。
func RenderHistoryTable(rows []history.Row) string {
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Calculation\tBMI\tCategory")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Index, FormatBMI(row.BMI), row.Category)
	}
	_ = tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// FormatBMI renders a BMI with two decimals for tables.
func FormatBMI(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
