package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	isTTY   bool
	verbose bool
	out     io.Writer = os.Stdout

	// Colors
	cyan   = lipgloss.Color("6")
	green  = lipgloss.Color("2")
	red    = lipgloss.Color("1")
	yellow = lipgloss.Color("3")
	dim    = lipgloss.Color("8")

	// Styles - exported for use in other packages
	Primary = lipgloss.NewStyle().Foreground(cyan)
	Success = lipgloss.NewStyle().Foreground(green)
	Error   = lipgloss.NewStyle().Foreground(red)
	Warning = lipgloss.NewStyle().Foreground(yellow)
	Dim     = lipgloss.NewStyle().Foreground(dim)
	Bold    = lipgloss.NewStyle().Bold(true)
)

func init() {
	isTTY = term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		// Disable colors in non-TTY
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects all ui messages, e.g. to a cobra command's writer
func SetOutput(w io.Writer) {
	out = w
}

// SetVerbose enables/disables verbose mode
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// IsTTY returns whether stdout is a terminal
func IsTTY() bool {
	return isTTY
}

// Step prints a step indicator: [1/4] Parsing command line
func Step(num, total int, msg string) {
	prefix := Dim.Render(fmt.Sprintf("[%d/%d]", num, total))
	fmt.Fprintf(out, "%s %s\n", prefix, msg)
}

// Detail prints indented secondary info with arrow
func Detail(msg string) {
	fmt.Fprintf(out, "  %s %s\n", Dim.Render("→"), msg)
}

// Verbosef prints a formatted message only in verbose mode
func Verbosef(format string, a ...any) {
	if verbose {
		fmt.Fprintf(out, "  %s %s\n", Dim.Render("→"), Dim.Render(fmt.Sprintf(format, a...)))
	}
}

// SuccessMsg prints a success message with checkmark
func SuccessMsg(msg string) {
	fmt.Fprintf(out, "%s %s\n", Success.Render("✓"), msg)
}

// ErrorMsg prints an error with formatting and optional hints
func ErrorMsg(title string, err error, hints ...string) {
	fmt.Fprintf(out, "%s %s\n", Error.Render("✗"), title)
	if err != nil {
		fmt.Fprintf(out, "  %s\n", Dim.Render(err.Error()))
	}
	for _, hint := range hints {
		fmt.Fprintf(out, "  %s %s\n", Dim.Render("Hint:"), hint)
	}
}

// WarnMsg prints a warning message
func WarnMsg(msg string) {
	fmt.Fprintf(out, "%s %s\n", Warning.Render("!"), msg)
}

// FormatDuration formats duration nicely (e.g., "234ms" or "1.2s")
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats a byte count for batch and file sizes (e.g., "890B",
// "195.3KB" or "1.5MB")
func FormatBytes(b int) string {
	switch {
	case b < 1024:
		return fmt.Sprintf("%dB", b)
	case b < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
	}
}

// Count renders n with noun, pluralized: "1 option", "3 options"
func Count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Println prints a line to the ui output
func Println(a ...any) {
	fmt.Fprintln(out, a...)
}
