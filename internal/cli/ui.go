package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shadergraph/pkg/cache"
	"github.com/matzehuels/shadergraph/pkg/export"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints counts on a single line, optionally followed by a
// cached/fresh tag.
func printStats(parts []string, cached *bool) {
	if cached != nil {
		status, style := iconFresh, styleComputed
		if *cached {
			status, style = iconCached, styleCached
		}
		parts = append(parts, style.Render(status))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// count formats n with a singular or plural noun.
func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return strconv.Itoa(n) + " " + strings.TrimSuffix(noun, "y") + "ies"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// =============================================================================
// Batch Summary
// =============================================================================

// printBatch writes one table row per exported or failed material.
func printBatch(w io.Writer, b *export.Batch) {
	fmt.Fprintln(w, batchTable(b).Render())
}

func batchTable(b *export.Batch) *table.Table {
	rows := make([][]string, 0, len(b.Results)+len(b.Failed))
	for _, r := range b.Results {
		g := r.Document
		rows = append(rows, []string{
			iconSuccess,
			g.MaterialName,
			strconv.Itoa(len(g.Nodes)),
			strconv.Itoa(len(g.Links)),
			strconv.Itoa(len(r.Issues)),
			r.Path,
		})
	}
	for _, f := range b.Failed {
		rows = append(rows, []string{iconError, f.Material, "—", "—", "—", f.Err.Error()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	ok := len(b.Results)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Material", "Nodes", "Links", "Issues", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row >= ok:
				if col == 0 {
					return styleIconError.Padding(0, 1)
				}
				return base.Foreground(colorDim)
			case col == 0:
				return styleIconSuccess.Padding(0, 1)
			case col >= 2 && col <= 4:
				return base.Foreground(colorCyan)
			case col == 5:
				return base.Foreground(colorDim)
			}
			return base
		})
}

// =============================================================================
// Cache Listing
// =============================================================================

func cacheTable(entries []cache.Entry, now time.Time) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		_, hash, _ := strings.Cut(e.Key, ":")
		if len(hash) > 12 {
			hash = hash[:12]
		}
		expires := "never"
		if !e.ExpiresAt.IsZero() {
			expires = "in " + e.ExpiresAt.Sub(now).Round(time.Minute).String()
		}
		rows[i] = []string{
			e.Kind,
			hash,
			byteSize(e.Size),
			e.StoredAt.Local().Format("Jan 2 15:04"),
			expires,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Key", "Size", "Stored", "Expires").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 {
				return base.Foreground(colorCyan)
			}
			if col == 1 {
				return base.Foreground(colorDim)
			}
			return base
		})
}

// byteSize formats n as B, KiB or MiB.
func byteSize(n int) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
