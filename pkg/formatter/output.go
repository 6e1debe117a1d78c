package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/aomaas/pkg/view"
	"gopkg.in/yaml.v3"
)

// Terminal renders form outcomes to a writer. It satisfies controller.Results.
type Terminal struct {
	out    io.Writer
	format string
	err    error
}

// NewTerminal creates a terminal results surface. format is human, json or yaml.
func NewTerminal(out io.Writer, format string) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{out: out, format: format}
}

// Clear is a no-op: terminal output is append-only.
func (t *Terminal) Clear() {}

// Show writes out in the configured format. A marshal failure is kept and
// reported by Err.
func (t *Terminal) Show(out view.Output) {
	t.err = DisplayResults(t.out, out, t.format)
}

// Err returns the error from the last Show, if any.
func (t *Terminal) Err() error {
	return t.err
}

// DisplayResults formats and displays an outcome
func DisplayResults(w io.Writer, out view.Output, format string) error {
	switch format {
	case "json":
		return displayJSON(w, out)
	case "yaml":
		return displayYAML(w, out)
	case "human":
		fallthrough
	default:
		displayHuman(w, out)
	}
	return nil
}

func displayJSON(w io.Writer, out view.Output) error {
	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, out view.Output) error {
	output, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, out view.Output) {
	switch out.Kind {
	case view.KindError:
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(w, "✗ %s\n", out.Message)
		return
	case view.KindNotice:
		fmt.Fprintf(w, "\n%s\n", color.HiBlackString(out.Message))
		return
	}

	if out.Results == nil {
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "🔧 %s\n", strings.ToUpper(out.Results.Title))
	fmt.Fprintf(w, "   %s\n\n", out.Results.Summary)

	for i, card := range out.Results.Cards {
		priorityColor := getPriorityColor(card.PriorityLevel)
		fmt.Fprintf(w, "   %d. %s %s  ", i+1, getPriorityIcon(card.PriorityLevel), card.Type)
		priorityColor.Fprintf(w, "[%s]\n", card.Priority)
		white.Fprintf(w, "      %s\n", card.Title)
		fmt.Fprintln(w, wrapText(card.Description, 80, "      "))
		fmt.Fprintf(w, "      📁 %s   ⏱  %s\n\n", card.Location, color.HiBlackString(card.Effort))
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func getPriorityColor(level string) *color.Color {
	switch level {
	case "high":
		return color.New(color.FgRed, color.Bold)
	case "low":
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgYellow)
	}
}

func getPriorityIcon(level string) string {
	switch level {
	case "high":
		return "🔴"
	case "low":
		return "🟢"
	default:
		return "🟡"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
