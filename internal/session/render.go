package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"flooring-chatter/internal/catalog"
)

// Formatter owns every presentation decision: money formatting, table
// layout and colors. Values reach it at full precision.
type Formatter struct {
	currency string
	styled   bool
	heading  lipgloss.Style
	warning  lipgloss.Style
}

// NewFormatter binds styles to w; with styled=false output is plain text.
func NewFormatter(w io.Writer, currency string, styled bool) Formatter {
	r := lipgloss.NewRenderer(w)
	return Formatter{
		currency: currency,
		styled:   styled,
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func (f Formatter) Money(d decimal.Decimal) string {
	return f.currency + d.StringFixed(2)
}

func (f Formatter) Heading(s string) string {
	if !f.styled {
		return s
	}
	return f.heading.Render(s)
}

func (f Formatter) Warning(s string) string {
	if !f.styled {
		return s
	}
	return f.warning.Render(s)
}

func (f Formatter) newTable() table.Writer {
	tw := table.NewWriter()
	if f.styled {
		tw.SetStyle(table.StyleLight)
	}
	return tw
}

// ProductTable lists name, type and price for every product.
func (f Formatter) ProductTable(ps []catalog.Product) string {
	tw := f.newTable()
	tw.AppendHeader(table.Row{"Product Name", "Type", "Price per Sq Ft"})
	for _, p := range ps {
		tw.AppendRow(table.Row{p.Name, p.Category, f.Money(p.PricePerArea)})
	}
	return tw.Render()
}

// DetailTable also includes the installation cost column.
func (f Formatter) DetailTable(ps []catalog.Product) string {
	tw := f.newTable()
	tw.AppendHeader(table.Row{"Product Name", "Type", "Price per Sq Ft", "Installation Cost per Sq Ft"})
	for _, p := range ps {
		tw.AppendRow(table.Row{p.Name, p.Category, f.Money(p.PricePerArea), f.Money(p.InstallCostPerArea)})
	}
	return tw.Render()
}

func (f Formatter) FilterLine(p catalog.Product) string {
	return fmt.Sprintf("%s - %s/sq ft", p.Name, f.Money(p.PricePerArea))
}

type field struct {
	key, value string
}

func (f Formatter) costFields(b catalog.CostBreakdown) []field {
	return []field{
		{"Product Name", b.ProductName},
		{"Area Size (sq ft)", b.Area.String()},
		{"Material Cost", f.Money(b.MaterialCost)},
		{"Installation Cost", f.Money(b.InstallCost)},
		{"Total Cost", f.Money(b.TotalCost)},
	}
}

// CostLines renders a breakdown one "Key: value" pair per line.
func (f Formatter) CostLines(b catalog.CostBreakdown) []string {
	fields := f.costFields(b)
	out := make([]string, 0, len(fields))
	for _, kv := range fields {
		out = append(out, kv.key+": "+kv.value)
	}
	return out
}

// CostSummary renders a breakdown on a single line for the interaction log.
func (f Formatter) CostSummary(b catalog.CostBreakdown) string {
	return strings.Join(f.CostLines(b), ", ")
}
