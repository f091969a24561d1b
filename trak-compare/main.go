package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/trakcmp"
	"github.com/npillmayer/trakcmp/internal/compare"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

func main() {
	initDisplay()
	initTracing()

	commando.
		SetExecutableName("trak-compare").
		SetVersion("v0.1.0").
		SetDescription("Compare HarfBuzz ot and coretext shaping across point sizes.\n" +
			"Writes a composite PNG (coretext green, ot red) or, with --shape-data, appends hb-shape traces.")

	commando.
		Register(nil).
		AddArgument("example_no", fmt.Sprintf("example number (0..%d)", len(trakcmp.Examples)-1), "").
		AddArgument("filename", "output file", "").
		AddFlag("shape-data", "append shaping traces to the output file instead of writing an image", commando.Bool, nil).
		AddFlag("align-ct-ot-start", "shift ot rasters to align run starts with coretext", commando.Bool, nil).
		AddFlag("hb-view", "path of the hb-view executable", commando.String, trakcmp.DefaultViewTool).
		AddFlag("hb-shape", "path of the hb-shape executable", commando.String, trakcmp.DefaultShapeTool).
		AddFlag("features,f", "feature list (e.g. +kern,-liga,aalt=2)", commando.String, trakcmp.DefaultFeatures).
		AddFlag("font-size", "rendering size in pixels", commando.Int, trakcmp.DefaultFontSize).
		AddFlag("workers,w", "number of parallel workers (0 = CPUs-1)", commando.Int, 0).
		AddFlag("script,s", "script (ISO 15924, e.g. Latn), - for auto", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en), - for auto", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl, - for auto", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Info").
		SetAction(runCompare)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.trakcmp":   "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func runCompare(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	opts := options{
		example:    args["example_no"].Value,
		output:     args["filename"].Value,
		shapeData:  mustFlagBool(flags["shape-data"], "shape-data"),
		alignStart: mustFlagBool(flags["align-ct-ot-start"], "align-ct-ot-start"),
		viewTool:   mustFlagString(flags["hb-view"], "hb-view"),
		shapeTool:  mustFlagString(flags["hb-shape"], "hb-shape"),
		features:   mustFlagString(flags["features"], "features"),
		fontSize:   mustFlagInt(flags["font-size"], "font-size"),
		workers:    mustFlagInt(flags["workers"], "workers"),
		script:     mustFlagString(flags["script"], "script"),
		lang:       mustFlagString(flags["lang"], "lang"),
		direction:  mustFlagString(flags["direction"], "direction"),
	}
	if err := setTraceLevel(mustFlagString(flags["trace"], "trace")); err != nil {
		fatalf("%v", err)
	}

	conf, err := opts.config()
	if err != nil {
		fatalf("%v", err)
	}
	run, err := compare.New(conf)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run.Run(ctx); err != nil {
		pterm.Error.Println(err.Error())
		stop()
		os.Exit(1)
	}
	if conf.ShapeData {
		pterm.Info.Println(fmt.Sprintf("appended shaping traces for %d point sizes to %s", len(conf.PtemSizes), conf.Output))
	} else {
		pterm.Info.Println(fmt.Sprintf("wrote %s (coretext green, ot red, %d point sizes)", conf.Output, len(conf.PtemSizes)))
	}
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "trak-compare: "+format+"\n", args...)
	os.Exit(1)
}
