package fontload

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "trakcmp")
	defer teardown()

	f, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	assert.Contains(t, f.Fontname, "Go")
	assert.Equal(t, int(f.SFNT.UnitsPerEm()), f.UnitsPerEm)
	assert.Greater(t, f.UnitsPerEm, 0)
	assert.Equal(t, fmt.Sprintf("%s (%d units/em)", f.Fontname, f.UnitsPerEm), f.String())

	_, err = ParseOpenTypeFont([]byte("not a font"))
	assert.Error(t, err)
}

func TestLoadAndDescribe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "trakcmp")
	defer teardown()

	dir := t.TempDir()
	path := filepath.Join(dir, "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, path+": "+f.String(), Describe(path))

	missing := filepath.Join(dir, "TestTRAK.ttf")
	_, err = LoadOpenTypeFont(missing)
	assert.Error(t, err)
	assert.Equal(t, missing+" (not readable here)", Describe(missing))
}
