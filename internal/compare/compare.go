/*
Package compare runs a complete ot-versus-coretext comparison.

A Runner calls the HarfBuzz tools for every point size of its configuration,
spreading the point sizes over a pool of workers. Each unit of work calls
the tool once per backend, one after the other. Results are collected in
point-size order and then either composited into one image or written out
as shaping traces.
*/
package compare

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trakcmp"
	"github.com/npillmayer/trakcmp/internal/composite"
	"github.com/npillmayer/trakcmp/internal/fontload"
	"github.com/npillmayer/trakcmp/internal/hbtool"
	"github.com/npillmayer/trakcmp/internal/parmap"
	"github.com/npillmayer/trakcmp/internal/shapetrace"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// Renderer produces a raster for an invocation; hbtool.Tool running hb-view
// is one.
type Renderer interface {
	Image(context.Context, hbtool.Invocation) (image.Image, error)
}

// Shaper produces a shaping trace for an invocation; hbtool.Tool running
// hb-shape is one.
type Shaper interface {
	Text(context.Context, hbtool.Invocation) (string, error)
	CommandLine(hbtool.Invocation) string
}

// Runner performs the comparison described by a trakcmp.Config.
type Runner struct {
	conf    trakcmp.Config
	view    Renderer
	shape   Shaper
	workers int
}

// Option configures a Runner.
type Option func(*Runner)

// WithRenderer replaces the hb-view tool of the configuration.
func WithRenderer(r Renderer) Option {
	return func(run *Runner) { run.view = r }
}

// WithShaper replaces the hb-shape tool of the configuration.
func WithShaper(s Shaper) Option {
	return func(run *Runner) { run.shape = s }
}

// New creates a Runner for conf. conf is validated first.
func New(conf trakcmp.Config, opts ...Option) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	run := &Runner{
		conf:    conf,
		view:    hbtool.Tool{Path: conf.ViewTool},
		shape:   hbtool.Tool{Path: conf.ShapeTool},
		workers: conf.Workers,
	}
	if run.workers == 0 {
		run.workers = parmap.Workers()
	}
	for _, opt := range opts {
		opt(run)
	}
	return run, nil
}

// Config returns the runner's configuration.
func (run *Runner) Config() trakcmp.Config {
	return run.conf
}

func (run *Runner) invocation(ptem int, backend string) hbtool.Invocation {
	return hbtool.Invocation{
		Features:  run.conf.Features,
		Ptem:      ptem,
		FontSize:  run.conf.FontSize,
		Shaper:    backend,
		FontPath:  run.conf.Example.FontPath,
		Text:      run.conf.Example.Text,
		Script:    run.conf.Script,
		Language:  run.conf.Language,
		Direction: run.conf.Direction,
	}
}

// RasterPair renders the example at one point size with both backends.
func (run *Runner) RasterPair(ctx context.Context, ptem int) (composite.Pair, error) {
	var rasters [len(trakcmp.Backends)]image.Image
	for i, backend := range trakcmp.Backends {
		img, err := run.view.Image(ctx, run.invocation(ptem, backend))
		if err != nil {
			return composite.Pair{}, fmt.Errorf("ptem %d, %s: %w", ptem, backend, err)
		}
		rasters[i] = img
	}
	return composite.Pair{OT: rasters[0], CoreText: rasters[1]}, nil
}

// TraceBlock shapes the example at one point size with both backends and
// returns the labeled traces, ot first.
func (run *Runner) TraceBlock(ctx context.Context, ptem int) (string, error) {
	entries := make([]shapetrace.Entry, 0, len(trakcmp.Backends))
	for _, backend := range trakcmp.Backends {
		inv := run.invocation(ptem, backend)
		out, err := run.shape.Text(ctx, inv)
		if err != nil {
			return "", fmt.Errorf("ptem %d, %s: %w", ptem, backend, err)
		}
		entries = append(entries, shapetrace.Entry{
			Command: run.shape.CommandLine(inv),
			Output:  out,
		})
	}
	return shapetrace.Block(ptem, entries), nil
}

// RasterPairs renders all point sizes. Result i belongs to PtemSizes[i].
func (run *Runner) RasterPairs(ctx context.Context) ([]composite.Pair, error) {
	tracer().Infof("rendering %d point sizes with %d workers", len(run.conf.PtemSizes), run.workers)
	return parmap.Map(ctx, run.workers, run.conf.PtemSizes, run.RasterPair)
}

// TraceBlocks shapes all point sizes. Result i belongs to PtemSizes[i].
func (run *Runner) TraceBlocks(ctx context.Context) ([]string, error) {
	tracer().Infof("shaping %d point sizes with %d workers", len(run.conf.PtemSizes), run.workers)
	return parmap.Map(ctx, run.workers, run.conf.PtemSizes, run.TraceBlock)
}

// AlignmentOffsets derives the per-point-size shift of the ot raster from
// the shaping traces.
func (run *Runner) AlignmentOffsets(ctx context.Context) ([]int, error) {
	blocks, err := run.TraceBlocks(ctx)
	if err != nil {
		return nil, err
	}
	return shapetrace.Offsets(run.conf.PtemSizes, blocks)
}

// Composite renders all point sizes and overlays them into one image.
func (run *Runner) Composite(ctx context.Context) (*image.NRGBA, error) {
	var offsets []int
	if run.conf.AlignStart {
		var err error
		if offsets, err = run.AlignmentOffsets(ctx); err != nil {
			return nil, fmt.Errorf("cannot align run starts: %w", err)
		}
	}
	pairs, err := run.RasterPairs(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(run.conf.PtemSizes))
	for i, ptem := range run.conf.PtemSizes {
		labels[i] = shapetrace.Label(ptem)
	}
	return composite.Compose(pairs, labels, offsets)
}

// WriteImage builds the composite and saves it as PNG to the output file.
func (run *Runner) WriteImage(ctx context.Context) error {
	img, err := run.Composite(ctx)
	if err != nil {
		return err
	}
	return composite.WritePNG(run.conf.Output, img)
}

// WriteTrace appends the shaping traces of all point sizes to the output
// file.
func (run *Runner) WriteTrace(ctx context.Context) error {
	blocks, err := run.TraceBlocks(ctx)
	if err != nil {
		return err
	}
	return appendFile(run.conf.Output, strings.Join(blocks, ""))
}

func appendFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}

// Run performs the configured comparison: traces if ShapeData is set, the
// composite image otherwise.
func (run *Runner) Run(ctx context.Context) error {
	ex := run.conf.Example
	tracer().Infof("comparing %q, font %s", ex.Text, fontload.Describe(ex.FontPath))
	if run.conf.ShapeData {
		if run.conf.AlignStart {
			tracer().Infof("alignment is ignored for shaping traces")
		}
		return run.WriteTrace(ctx)
	}
	return run.WriteImage(ctx)
}
