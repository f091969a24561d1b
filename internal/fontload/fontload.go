// Package fontload reads just enough of a font file to say what is being
// compared. The comparison itself never looks at the font; the HarfBuzz
// tools do.
package fontload

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname   string
	Filepath   string
	UnitsPerEm int
	Binary     []byte
	SFNT       *sfnt.Font
}

func (f *ScalableFont) String() string {
	name := f.Fontname
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s (%d units/em)", name, f.UnitsPerEm)
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.UnitsPerEm = int(f.SFNT.UnitsPerEm())
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font has no full name: %v", err)
		f.Fontname = ""
	}
	return f, nil
}

// Describe returns a one-line description of the font at path, for
// logging. A font which cannot be read is reported as such; this is not an
// error, as the HarfBuzz tools may resolve paths differently.
func Describe(path string) string {
	f, err := LoadOpenTypeFont(path)
	if err != nil {
		tracer().Debugf("font preflight: %v", err)
		return fmt.Sprintf("%s (not readable here)", path)
	}
	return fmt.Sprintf("%s: %s", path, f)
}
