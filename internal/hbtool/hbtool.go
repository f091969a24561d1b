/*
Package hbtool runs the HarfBuzz command-line utilities hb-view and hb-shape.

Both tools share the same argument shape: a feature list, the point size
(ptem), the pixel size to render at, the shaper backend, a font file and the
text. hb-view writes an encoded image to stdout, hb-shape a textual glyph
stream of the form

	[A=0@-14,0+1219|B=1+1195|C=2+1270]

Failures are reported as *ExecError, which distinguishes between a tool that
could not be started, a tool that exited with an error and output that could
not be decoded.
*/
package hbtool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// Invocation holds the parameters of one tool call.
type Invocation struct {
	Features  string
	Ptem      int
	FontSize  int
	Shaper    string
	FontPath  string
	Text      string
	Script    string // optional
	Language  string // optional
	Direction string // optional
}

// Args returns the command-line arguments for inv, without the executable.
func (inv Invocation) Args() []string {
	args := []string{
		"--features=" + inv.Features,
		"--font-ptem=" + strconv.Itoa(inv.Ptem),
		"--font-size=" + strconv.Itoa(inv.FontSize),
		"--shaper=" + inv.Shaper,
	}
	if inv.Script != "" {
		args = append(args, "--script="+inv.Script)
	}
	if inv.Language != "" {
		args = append(args, "--language="+inv.Language)
	}
	if inv.Direction != "" {
		args = append(args, "--direction="+inv.Direction)
	}
	return append(args, inv.FontPath, inv.Text)
}

func (inv Invocation) String() string {
	return fmt.Sprintf("%s@%dpt", inv.Shaper, inv.Ptem)
}

// CommandLine renders an executable and its arguments as a single line
// which may be pasted into a shell.
func CommandLine(path string, args []string) string {
	var sb strings.Builder
	sb.WriteString(quoteArg(path))
	for _, a := range args {
		sb.WriteByte(' ')
		sb.WriteString(quoteArg(a))
	}
	return sb.String()
}

func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_=+./,:@%", r)
}
