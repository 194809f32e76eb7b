package style

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/fedwiki/wikikit/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto detects the format from the output stream
	FormatAuto Format = iota
	// FormatTerminal renders colors and prefixes
	FormatTerminal
	// FormatText renders plain text
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
	}
}

// DetectFormat determines the output format from NO_COLOR, whether output is
// a terminal, and the terminal's color support
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve returns f, or the detected format for output when f is FormatAuto
func (f Format) Resolve(output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}

// FormatFor detects the format for w. Anything that is not a file gets
// plain text.
func FormatFor(w io.Writer) Format {
	if f, ok := w.(*os.File); ok {
		return DetectFormat(f)
	}
	return FormatText
}
