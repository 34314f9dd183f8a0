package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/kpi"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// numbers groups thousands the way the dashboard displays them
var numbers = message.NewPrinter(language.English)

// formatMoney renders a currency amount with two decimals
func formatMoney(v float64) string {
	return numbers.Sprintf("$%.2f", v)
}

// formatNumber renders a plain figure with grouping
func formatNumber(v float64, decimals int) string {
	return numbers.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// formatPct renders a percent value
func formatPct(v float64) string {
	return numbers.Sprintf("%.1f%%", v)
}

// formatLiquidity hides the no-loan sentinel
func formatLiquidity(ratio float64) string {
	if !kpi.LiquidityDisplayable(ratio) {
		return "N/A"
	}
	return numbers.Sprintf("%.2f", ratio)
}

// formatComparison renders a customer-vs-average comparison
func formatComparison(c kpi.Comparison) string {
	if !c.Applicable {
		return "-"
	}

	mark := "✅"
	if !c.Better {
		mark = "⚠️"
	}
	if c.Direction == kpi.AtAvg {
		mark = "•"
	}
	return fmt.Sprintf("%s %+.1f%% (%s)", mark, c.PercentDiff, c.Direction)
}

// describeFilters lists the active filters, or "All customers"
func describeFilters(f contracts.FilterState, search string) string {
	var parts []string
	add := func(name, value string) {
		if !contracts.IsAll(value) {
			parts = append(parts, name+"="+value)
		}
	}

	add("gender", f.Gender)
	add("relationship", f.Relationship)
	add("advisor", f.Advisor)
	add("tenure", string(f.Tenure))
	add("revenue", string(f.Revenue))
	add("risk", string(f.Risk))
	if search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", search))
	}

	if len(parts) == 0 {
		return "All customers"
	}
	return strings.Join(parts, ", ")
}

// PrintJSON writes v as indented JSON
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintHeader prints a titled double-line header
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s\n", title)
	PrintSeparator(w)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintf(w, "ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		if width < 0 {
			width = -width
		}
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row; right-aligns cells whose width is negative
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		if widths[i] < 0 {
			fmt.Fprintf(w, "%*s", -widths[i], val)
		} else {
			fmt.Fprintf(w, "%-*s", widths[i], truncate(val, widths[i]))
		}
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
