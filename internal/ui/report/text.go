package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"emblint/internal/engine/rules"
)

var (
	fileStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderText writes the human-readable report: one block per file in
// scan order, one line per violation in line order.
func RenderText(w io.Writer, res Result) {
	clean := 0
	for _, file := range res.Files {
		if file.ParseError == "" && len(file.Violations) == 0 {
			clean++
			continue
		}

		fmt.Fprintln(w, fileStyle.Render(file.Path))
		if file.ParseError != "" {
			fmt.Fprintf(w, "  %4d  %s  %s\n",
				file.ParseErrorLine,
				errorStyle.Render("error"),
				file.ParseError)
			fmt.Fprintln(w)
			continue
		}

		for _, v := range file.Violations {
			tag := warningStyle.Render("warning")
			if v.Severity == rules.SeverityError {
				tag = errorStyle.Render("error")
			}
			fmt.Fprintf(w, "  %4d  %s  %s  %s\n", v.Line, tag, v.Message, ruleStyle.Render(v.RuleID))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d files checked, %d clean, %d violations, %d parse failures\n",
		len(res.Files), clean, res.ViolationCount(), res.ParseErrorCount())
}
