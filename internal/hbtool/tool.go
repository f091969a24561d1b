package hbtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // hb-view writes PNG by default
	"os/exec"
	"strings"
)

// Kind classifies a tool failure.
type Kind int

const (
	SpawnFailed  Kind = iota + 1 // executable missing or not startable
	ExitFailed                   // tool ran but reported an error
	DecodeFailed                 // stdout is not what we expected
)

func (k Kind) String() string {
	switch k {
	case SpawnFailed:
		return "spawn"
	case ExitFailed:
		return "exit"
	case DecodeFailed:
		return "decode"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels matching the corresponding ExecError kinds with errors.Is.
var (
	ErrSpawn  = errors.New("cannot start tool")
	ErrExit   = errors.New("tool failed")
	ErrDecode = errors.New("cannot decode tool output")
)

// ExecError is returned for any failed tool invocation.
type ExecError struct {
	Kind    Kind
	Command string // the command line, as by CommandLine
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Command, e.Err)
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *ExecError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ExecError) sentinel() error {
	switch e.Kind {
	case SpawnFailed:
		return ErrSpawn
	case ExitFailed:
		return ErrExit
	case DecodeFailed:
		return ErrDecode
	}
	return nil
}

// Tool is an external HarfBuzz utility.
type Tool struct {
	Path string
}

// CommandLine returns the command line Run uses for inv.
func (t Tool) CommandLine(inv Invocation) string {
	return CommandLine(t.Path, inv.Args())
}

// Run executes the tool for inv and returns everything it wrote to stdout.
// It blocks until the tool has exited.
func (t Tool) Run(ctx context.Context, inv Invocation) ([]byte, error) {
	args := inv.Args()
	cmdline := CommandLine(t.Path, args)
	tracer().Debugf("exec %s", cmdline)
	cmd := exec.CommandContext(ctx, t.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		kind := SpawnFailed
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			kind = ExitFailed
		}
		tracer().Errorf("%s failed: %v", inv, err)
		return nil, &ExecError{
			Kind:    kind,
			Command: cmdline,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	tracer().Debugf("%s wrote %d bytes", inv, stdout.Len())
	return stdout.Bytes(), nil
}

// Image executes the tool for inv and decodes its output as an image.
func (t Tool) Image(ctx context.Context, inv Invocation) (image.Image, error) {
	out, err := t.Run(ctx, inv)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, &ExecError{
			Kind:    DecodeFailed,
			Command: t.CommandLine(inv),
			Err:     fmt.Errorf("%d bytes of output: %w", len(out), err),
		}
	}
	tracer().Debugf("%s: decoded %s image %v", inv, format, img.Bounds().Size())
	return img, nil
}

// Text executes the tool for inv and returns its output as text.
func (t Tool) Text(ctx context.Context, inv Invocation) (string, error) {
	out, err := t.Run(ctx, inv)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
