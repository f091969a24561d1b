package main

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/trakcmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() options {
	return options{
		example:   "1",
		output:    "out.png",
		viewTool:  trakcmp.DefaultViewTool,
		shapeTool: trakcmp.DefaultShapeTool,
		features:  trakcmp.DefaultFeatures,
		fontSize:  trakcmp.DefaultFontSize,
		script:    "-",
		lang:      "-",
		direction: "-",
	}
}

func TestOptionsDefaults(t *testing.T) {
	conf, err := defaultOptions().config()
	require.NoError(t, err)
	assert.Equal(t, trakcmp.Examples[1], conf.Example)
	assert.Equal(t, "out.png", conf.Output)
	assert.Equal(t, "+kern", conf.Features)
	assert.Equal(t, 256, conf.FontSize)
	assert.Equal(t, "", conf.Script)
	assert.Equal(t, "", conf.Language)
	assert.Equal(t, "", conf.Direction)
	assert.False(t, conf.ShapeData)
	assert.False(t, conf.AlignStart)
}

func TestOptionsAllExamples(t *testing.T) {
	for i, ex := range trakcmp.Examples {
		opts := defaultOptions()
		opts.example = string(rune('0' + i))
		conf, err := opts.config()
		require.NoError(t, err, "example %d", i)
		assert.Equal(t, ex, conf.Example)
	}
}

func TestOptionsFlags(t *testing.T) {
	opts := defaultOptions()
	opts.shapeData = true
	opts.alignStart = true
	opts.features = "kern -liga"
	opts.script, opts.lang, opts.direction = "latn", "en", "RTL"
	opts.shapeTool = " /opt/hb/hb-shape "
	opts.workers = 3
	conf, err := opts.config()
	require.NoError(t, err)
	assert.True(t, conf.ShapeData)
	assert.True(t, conf.AlignStart)
	assert.Equal(t, "kern,-liga", conf.Features)
	assert.Equal(t, "Latn", conf.Script)
	assert.Equal(t, "en", conf.Language)
	assert.Equal(t, "rtl", conf.Direction)
	assert.Equal(t, "/opt/hb/hb-shape", conf.ShapeTool)
	assert.Equal(t, 3, conf.Workers)
}

func TestOptionsInvalid(t *testing.T) {
	opts := defaultOptions()
	opts.example = "3"
	_, err := opts.config()
	assert.True(t, errors.Is(err, trakcmp.ErrInvalidExample))

	broken := []func(*options){
		func(o *options) { o.example = "one" },
		func(o *options) { o.output = "" },
		func(o *options) { o.features = "kerning" },
		func(o *options) { o.script = "Latin" },
		func(o *options) { o.direction = "ttb" },
		func(o *options) { o.fontSize = -1 },
		func(o *options) { o.workers = -1 },
	}
	for i, modify := range broken {
		opts := defaultOptions()
		modify(&opts)
		_, err := opts.config()
		assert.Error(t, err, "case %d", i)
	}
}

func TestSetTraceLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "trakcmp")
	defer teardown()

	for _, level := range []string{"Debug", "Info", "Error", "info", ""} {
		assert.NoError(t, setTraceLevel(level), "level %q", level)
	}
	assert.Error(t, setTraceLevel("Verbose"))
}
