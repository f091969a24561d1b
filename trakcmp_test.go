package trakcmp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectExample(t *testing.T) {
	want := []Example{
		{"ABC", "../test/shaping/data/in-house/fonts/TestTRAK.ttf"},
		{"YoVa", "/System/Library/Fonts/SFNSText.ttf"},
		{"HH", "TestTRAKOne.ttf"},
	}
	for i, w := range want {
		ex, err := SelectExample(i)
		require.NoError(t, err, "example %d", i)
		assert.Equal(t, w, ex, "example %d", i)
	}
	for _, n := range []int{-1, 3, 42} {
		_, err := SelectExample(n)
		assert.True(t, errors.Is(err, ErrInvalidExample), "expected ErrInvalidExample for %d, got %v", n, err)
	}
}

func TestPtemSizesAscending(t *testing.T) {
	require.NotEmpty(t, PtemSizes)
	for i := 1; i < len(PtemSizes); i++ {
		assert.Less(t, PtemSizes[i-1], PtemSizes[i], "ptem sizes must ascend at #%d", i)
	}
	assert.Equal(t, 3, PtemSizes[0])
	assert.Equal(t, 150, PtemSizes[len(PtemSizes)-1])
}

func TestBackendOrder(t *testing.T) {
	assert.Equal(t, "ot", Backends[0])
	assert.Equal(t, "coretext", Backends[1])
}

func TestNewConfigDefaults(t *testing.T) {
	conf, err := NewConfig(2, "out.png")
	require.NoError(t, err)
	assert.Equal(t, Examples[2], conf.Example)
	assert.Equal(t, PtemSizes, conf.PtemSizes)
	assert.Equal(t, "+kern", conf.Features)
	assert.Equal(t, 256, conf.FontSize)
	assert.Equal(t, "./hb-view", conf.ViewTool)
	assert.Equal(t, "./hb-shape", conf.ShapeTool)
	assert.False(t, conf.ShapeData)
	assert.False(t, conf.AlignStart)

	conf.PtemSizes[0] = 99
	assert.Equal(t, 3, PtemSizes[0], "config must not alias the package-level size list")
}

func TestConfigValidate(t *testing.T) {
	base, err := NewConfig(0, "out.png")
	require.NoError(t, err)

	broken := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty output", func(c *Config) { c.Output = " " }},
		{"no sizes", func(c *Config) { c.PtemSizes = nil }},
		{"zero size", func(c *Config) { c.PtemSizes = []int{3, 0} }},
		{"font size", func(c *Config) { c.FontSize = 0 }},
		{"workers", func(c *Config) { c.Workers = -2 }},
		{"view tool", func(c *Config) { c.ViewTool = "" }},
		{"shape tool", func(c *Config) { c.ShapeData = true; c.ShapeTool = "" }},
		{"align tool", func(c *Config) { c.AlignStart = true; c.ShapeTool = "" }},
	}
	for _, b := range broken {
		t.Run(b.name, func(t *testing.T) {
			conf := base
			conf.PtemSizes = append([]int(nil), base.PtemSizes...)
			b.modify(&conf)
			assert.Error(t, conf.Validate())
		})
	}

	_, err = NewConfig(5, "out.png")
	assert.ErrorIs(t, err, ErrInvalidExample)
}
