// Package pipeline runs a pixel transform over an image file:
// load → transform → save.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpfielding/pixshift.go/pkg/imageio"
	"github.com/jpfielding/pixshift.go/pkg/logging"
	"github.com/jpfielding/pixshift.go/pkg/pixel"
	"github.com/jpfielding/pixshift.go/pkg/util"
)

// ErrFileNotFound marks a run whose input path does not exist
var ErrFileNotFound = imageio.ErrNotFound

// IsNotFound reports whether err came from a missing input file
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// Options controls a single transform run.
type Options struct {
	Input    string   `json:"input"`
	Output   string   `json:"output"`
	Op       pixel.Op `json:"op"`
	Constant int      `json:"constant"` // additive shift, ignored by swap
}

// Result holds the output of a pipeline run.
type Result struct {
	JobID    string
	Input    string
	Output   string
	Op       pixel.Op
	Constant int
	Format   string // format the input was decoded from
	Width    int
	Height   int
	Digest   string // md5 of the transformed pixels
}

// apply is swapped in tests
var apply = pixel.Apply

// Run executes load → transform → save. It never panics: a panic during the
// run is recovered and returned as an error. On any error no output is
// written by this run.
func Run(ctx context.Context, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%s: recovered: %v", opts.Op, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobID := util.JobID(opts)
	ctx = logging.AppendCtx(ctx,
		slog.String("job", jobID),
		slog.String("op", opts.Op.String()),
	)
	slog.DebugContext(ctx, "loading image", "input", opts.Input)

	// 1. Load and force RGB
	img, format, err := imageio.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	bounds := img.Bounds()
	slog.DebugContext(ctx, "decoded image",
		slog.String("format", format),
		slog.Int("width", bounds.Dx()),
		slog.Int("height", bounds.Dy()))

	// 2. Transform the owned buffer
	if err := apply(img, opts.Op, opts.Constant); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	// 3. Encode by output extension
	if err := imageio.Save(opts.Output, img); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	slog.DebugContext(ctx, "saved image", "output", opts.Output)

	return &Result{
		JobID:    jobID,
		Input:    opts.Input,
		Output:   opts.Output,
		Op:       opts.Op,
		Constant: opts.Constant,
		Format:   format,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Digest:   util.PixelDigest(img),
	}, nil
}
