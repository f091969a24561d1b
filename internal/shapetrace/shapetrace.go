/*
Package shapetrace handles the textual glyph streams written by hb-shape.

A glyph stream looks like

	[A=0@-14,0+1219|B=1+1195|C=2+1270]

with one token per glyph: glyph name, '=', cluster, optionally '@' and the
x,y offset, then '+' and the advance. The only thing we extract is the x
offset of the glyph of cluster 0, which tells how far a backend moved the
start of the run. Everything else is passed through as text.
*/
package shapetrace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// OffsetScale converts hb-shape x offsets into pixel columns of the hb-view
// rasters. It is an empirical value.
const OffsetScale = 7

// startToken matches a glyph of cluster 0 with an x offset and a zero
// y offset, e.g. "[A=0@-14,0+".
var startToken = regexp.MustCompile(`\[[^\]=|]+=0@(-?\d+),0\+`)

// FirstOffset finds the first cluster-0 start token in trace and returns
// its x offset, negated and scaled to pixels. ok is false if trace holds no
// such token.
func FirstOffset(trace string) (offset int, ok bool) {
	m := startToken.FindStringSubmatch(trace)
	if m == nil {
		return 0, false
	}
	x, err := strconv.Atoi(m[1])
	if err != nil { // out of range; regexp guarantees digits
		return 0, false
	}
	return int(math.Round(float64(-x) / OffsetScale)), true
}

// MissingTokenError is returned by Offsets for a point size whose trace
// contains no start token.
type MissingTokenError struct {
	Ptem int
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("no start-of-run token in shaping trace for ptem %d", e.Ptem)
}

// Offsets computes one alignment offset per point size from the
// corresponding trace. ptems and traces must have equal length.
func Offsets(ptems []int, traces []string) ([]int, error) {
	if len(ptems) != len(traces) {
		return nil, fmt.Errorf("%d point sizes but %d traces", len(ptems), len(traces))
	}
	offsets := make([]int, len(traces))
	for i, trace := range traces {
		off, ok := FirstOffset(trace)
		if !ok {
			tracer().Errorf("ptem %d: no start token in %q", ptems[i], trace)
			return nil, &MissingTokenError{Ptem: ptems[i]}
		}
		tracer().Debugf("ptem %d: alignment offset %d", ptems[i], off)
		offsets[i] = off
	}
	return offsets, nil
}

// Entry is the output of one hb-shape call together with the command line
// that produced it.
type Entry struct {
	Command string
	Output  string
}

// Label returns the heading used for point size ptem, both in trace blocks
// and on composite rows.
func Label(ptem int) string {
	return "ptem: " + strconv.Itoa(ptem)
}

// Block formats the traces of all backends for one point size:
//
//	ptem: 12
//	$ ./hb-shape --shaper=ot ...
//	[A=0+1219|...]
//	$ ./hb-shape --shaper=coretext ...
//	[A=0+1200|...]
func Block(ptem int, entries []Entry) string {
	var sb strings.Builder
	sb.WriteString(Label(ptem))
	sb.WriteByte('\n')
	for _, e := range entries {
		sb.WriteString("$ ")
		sb.WriteString(e.Command)
		sb.WriteByte('\n')
		sb.WriteString(e.Output)
		if !strings.HasSuffix(e.Output, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
