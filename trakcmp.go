/*
Package trakcmp compares the output of two HarfBuzz shaping backends across a
range of point sizes.

The comparison is driven by the HarfBuzz command-line utilities: `hb-view`
renders a run of text to PNG, `hb-shape` prints the positioned glyph stream.
Both are run once per backend ("ot" and "coretext") and per point size
("ptem"). The resulting rasters are overlaid row by row into one composite
image, coretext in green and ot in red, so differences in tracking (the
`trak` table) show up as colored fringes.

The package itself holds the fixed configuration surface: the example table,
the list of point sizes and the backends. The work is done by
internal/compare.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package trakcmp

import (
	"errors"
	"fmt"
	"strings"
)

// Example is a sample text together with the font to render it with.
type Example struct {
	Text     string
	FontPath string
}

func (ex Example) String() string {
	return fmt.Sprintf("%q with %s", ex.Text, ex.FontPath)
}

// Examples is the fixed table of comparison examples, selected by index.
var Examples = [...]Example{
	{Text: "ABC", FontPath: "../test/shaping/data/in-house/fonts/TestTRAK.ttf"},
	{Text: "YoVa", FontPath: "/System/Library/Fonts/SFNSText.ttf"},
	{Text: "HH", FontPath: "TestTRAKOne.ttf"},
}

// PtemSizes lists the point sizes every comparison runs through, ascending.
var PtemSizes = []int{
	3,
	// trak table thresholds of SFNSText.ttf from here...
	6,
	9,
	10,
	11,
	12,
	13,
	14,
	15,
	16,
	17,
	20,
	22,
	28,
	32,
	36,
	50,
	64,
	80,
	100,
	138,
	// ...until here.
	150,
}

// Backend names, in the order they are invoked and reported.
const (
	BackendOT       = "ot"
	BackendCoreText = "coretext"
)

// Backends is the fixed backend order. Index 0 is always "ot".
var Backends = [2]string{BackendOT, BackendCoreText}

// Defaults for the tunable parts of a Config.
const (
	DefaultFeatures  = "+kern"
	DefaultFontSize  = 256
	DefaultViewTool  = "./hb-view"
	DefaultShapeTool = "./hb-shape"
)

// ErrInvalidExample is returned for an example number outside of Examples.
var ErrInvalidExample = errors.New("invalid example number")

// SelectExample returns the example with index n.
func SelectExample(n int) (Example, error) {
	if n < 0 || n >= len(Examples) {
		return Example{}, fmt.Errorf("%w: %d (expected 0..%d)", ErrInvalidExample, n, len(Examples)-1)
	}
	return Examples[n], nil
}

// Config is the complete, immutable configuration of one comparison run.
type Config struct {
	Example   Example
	PtemSizes []int
	Features  string // HarfBuzz feature list, passed verbatim
	FontSize  int    // rendering size in pixels
	Output    string // output file; overwritten for images, appended to for traces
	ShapeData bool   // dump shaping traces instead of compositing images
	// AlignStart shifts the ot raster to the run start of the coretext one.
	// Ignored if ShapeData is set.
	AlignStart bool
	Workers    int // 0 selects the default pool size
	ViewTool   string
	ShapeTool  string
	Script     string // optional, ISO 15924
	Language   string // optional, BCP 47
	Direction  string // optional, ltr|rtl
}

// NewConfig returns a configuration for example n, writing to output,
// with all other fields set to their defaults.
func NewConfig(n int, output string) (Config, error) {
	ex, err := SelectExample(n)
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		Example:   ex,
		PtemSizes: append([]int(nil), PtemSizes...),
		Features:  DefaultFeatures,
		FontSize:  DefaultFontSize,
		Output:    output,
		ViewTool:  DefaultViewTool,
		ShapeTool: DefaultShapeTool,
	}
	return conf, conf.Validate()
}

// Validate checks a configuration for completeness.
func (conf Config) Validate() error {
	if strings.TrimSpace(conf.Output) == "" {
		return errors.New("output file name is empty")
	}
	if conf.Example.Text == "" || conf.Example.FontPath == "" {
		return errors.New("example has no text or font")
	}
	if len(conf.PtemSizes) == 0 {
		return errors.New("no point sizes configured")
	}
	for i, ptem := range conf.PtemSizes {
		if ptem <= 0 {
			return fmt.Errorf("point size #%d is not positive: %d", i, ptem)
		}
	}
	if conf.FontSize <= 0 {
		return fmt.Errorf("font size must be > 0, is %d", conf.FontSize)
	}
	if conf.Workers < 0 {
		return fmt.Errorf("worker count must be >= 0, is %d", conf.Workers)
	}
	if conf.ShapeData && conf.ShapeTool == "" {
		return errors.New("no shaping tool configured")
	}
	if !conf.ShapeData && conf.ViewTool == "" {
		return errors.New("no view tool configured")
	}
	if conf.AlignStart && !conf.ShapeData && conf.ShapeTool == "" {
		return errors.New("alignment needs a shaping tool")
	}
	return nil
}
