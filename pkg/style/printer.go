package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Printer writes user-facing status lines. Terminal format uses pterm
// prefixes and lipgloss colors; text format writes bare lines.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

// NewPrinter creates a Printer. Errors and warnings go to errOut.
func NewPrinter(out, errOut io.Writer, format Format) *Printer {
	return &Printer{out: out, errOut: errOut, format: format}
}

// Styled reports whether the printer emits colors
func (p *Printer) Styled() bool {
	return p.format == FormatTerminal
}

// Render applies s when styled
func (p *Printer) Render(s lipgloss.Style, text string) string {
	if !p.Styled() {
		return text
	}
	return s.Render(text)
}

func (p *Printer) Info(format string, args ...interface{}) {
	p.prefixed(p.out, pterm.Info, "", format, args...)
}

func (p *Printer) Success(format string, args ...interface{}) {
	p.prefixed(p.out, pterm.Success, "", format, args...)
}

func (p *Printer) Warning(format string, args ...interface{}) {
	p.prefixed(p.errOut, pterm.Warning, "Warning: ", format, args...)
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.prefixed(p.errOut, pterm.Error, "Error: ", format, args...)
}

// Println writes a plain line to out
func (p *Printer) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *Printer) prefixed(w io.Writer, pp pterm.PrefixPrinter, plain, format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if !p.Styled() {
		_, _ = fmt.Fprintln(w, plain+msg)
		return
	}
	pp.WithWriter(w).Println(msg)
}
