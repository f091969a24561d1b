package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trakcmp"
	"github.com/npillmayer/trakcmp/internal/hbtool"
	"github.com/thatisuday/commando"
)

// options holds the raw command-line values.
type options struct {
	example    string
	output     string
	shapeData  bool
	alignStart bool
	viewTool   string
	shapeTool  string
	features   string
	fontSize   int
	workers    int
	script     string
	lang       string
	direction  string
}

// config checks the raw values and turns them into a run configuration.
func (opts options) config() (trakcmp.Config, error) {
	n, err := strconv.Atoi(strings.TrimSpace(opts.example))
	if err != nil {
		return trakcmp.Config{}, fmt.Errorf("example number %q is not an integer", opts.example)
	}
	conf, err := trakcmp.NewConfig(n, strings.TrimSpace(opts.output))
	if err != nil {
		return trakcmp.Config{}, err
	}
	conf.ShapeData = opts.shapeData
	conf.AlignStart = opts.alignStart
	if conf.Features, err = hbtool.ParseFeatures(opts.features); err != nil {
		return trakcmp.Config{}, err
	}
	if conf.Script, err = hbtool.ParseScript(opts.script); err != nil {
		return trakcmp.Config{}, err
	}
	if conf.Language, err = hbtool.ParseLanguage(opts.lang); err != nil {
		return trakcmp.Config{}, err
	}
	if conf.Direction, err = hbtool.ParseDirection(opts.direction); err != nil {
		return trakcmp.Config{}, err
	}
	if s := strings.TrimSpace(opts.viewTool); s != "" {
		conf.ViewTool = s
	}
	if s := strings.TrimSpace(opts.shapeTool); s != "" {
		conf.ShapeTool = s
	}
	if opts.fontSize != 0 {
		conf.FontSize = opts.fontSize
	}
	conf.Workers = opts.workers
	return conf, conf.Validate()
}

// setTraceLevel sets the level of the 'trakcmp' tracer from its name.
func setTraceLevel(level string) error {
	switch strings.TrimSpace(level) {
	case "Debug", "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info", "info", "":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error", "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	return nil
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}
