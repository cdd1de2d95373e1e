package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dustin-ward/dustinw-qc/compiler/back"
	"github.com/dustin-ward/dustinw-qc/compiler/ir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	beforeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	afterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// RoundsTable writes instruction counts after each pass of each round.
func RoundsTable(w io.Writer, res *back.Result) error {
	t := table.NewWriter()
	t.SetTitle("Optimization rounds")
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	header := table.Row{"Round", "Before"}
	for _, ps := range back.Passes {
		header = append(header, ps.Name)
	}

	t.AppendHeader(header)

	for _, r := range res.Rounds {
		row := table.Row{r.Round, r.Before}
		for _, n := range r.After {
			row = append(row, n)
		}

		t.AppendRow(row)
	}

	converged := "round limit reached"
	if res.Converged {
		converged = "converged"
	}

	t.AppendFooter(table.Row{"", "", converged})
	t.SetCaption("%v: %d -> %d instructions", back.NativeTranslationPass, res.Input, res.Native)

	_, err := io.WriteString(w, t.Render()+"\n")

	return err
}

// Diff renders the input and the optimized program side by side.
func Diff(before, after ir.Program) string {
	col := func(title string, st lipgloss.Style, p ir.Program) string {
		s := ProgramStats(p)

		body := strings.TrimSuffix(String(p), "\n")
		if body == "" {
			body = dimStyle.Render("(empty)")
		}

		sum := dimStyle.Render(strconv.Itoa(s.Total()) + " instrs, " + strconv.Itoa(s.Qubits.Size()) + " qubits")

		return st.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body, sum))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		col("input", beforeStyle, before),
		" ",
		col("optimized", afterStyle, after),
	)
}
