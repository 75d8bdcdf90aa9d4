// Package batch runs the normalization pipeline over a folder of images:
// scan, plan, fill, encode, write. It is the only package in the core that
// touches the filesystem.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"bucketcrop/internal/bucket"
	"bucketcrop/internal/fill"
	"bucketcrop/internal/fitplan"
	"bucketcrop/internal/imagecodec"
)

// Caller contract violations, reported before any file is touched.
var (
	ErrNoBuckets     = errors.New("no buckets selected")
	ErrNoFillOptions = errors.New("pad mode requires fill options")
	ErrMissingSource = errors.New("source folder does not exist")
)

// Options configures a single batch run. All fields are read-only during
// the run.
type Options struct {
	// SourceDir is the folder whose top-level images are processed.
	SourceDir string
	// TargetDir receives outputs under their original filenames. Empty
	// means overwrite in place in SourceDir.
	TargetDir string
	// Buckets is the non-empty candidate set for this run.
	Buckets bucket.Catalog
	// Mode selects crop or pad fitting.
	Mode fitplan.Mode
	// Fill parameterizes the padding margins. Required iff Mode is pad.
	Fill *fill.Options
	// MaxLongestSide, when positive, downscales outputs so their longer
	// side never exceeds it.
	MaxLongestSide int
	// SkipUnchanged skips files whose destination already exists and is
	// not older than the source (mtime comparison, no hashing).
	SkipUnchanged bool
	// Quality is the lossy encode quality; zero means the codec default.
	Quality int
}

// Progress is the per-file snapshot delivered to the progress callback,
// exactly once per accounted file, in processing order.
type Progress struct {
	Processed   int
	CurrentFile string
	Bucket      *bucket.Definition
}

// ProgressFunc receives Progress snapshots. Delivery is synchronous;
// callers wanting throttled UI updates do that on their side.
type ProgressFunc func(Progress)

// Result is the terminal aggregate of a run. Files never reached before a
// cancellation appear in no counter.
type Result struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Total returns the number of files accounted for.
func (r Result) Total() int {
	return r.Succeeded + r.Failed + r.Skipped
}

// Processor runs batches. It holds no state across runs beyond its logger;
// callers must not start two concurrent runs on the same instance.
type Processor struct {
	log zerolog.Logger
}

// New returns a Processor logging through the given logger.
func New(logger zerolog.Logger) *Processor {
	return &Processor{log: logger}
}

// Run processes every eligible file in opts.SourceDir sequentially.
// Per-file failures are counted and logged, never propagated: one bad file
// must not abort the batch. Cancellation via ctx is honored at file
// boundaries and yields the partial Result with a nil error.
func (p *Processor) Run(ctx context.Context, opts Options, onProgress ProgressFunc) (Result, error) {
	if err := validate(opts); err != nil {
		return Result{}, err
	}

	destDir := opts.TargetDir
	if destDir == "" {
		destDir = opts.SourceDir
	} else if err := os.MkdirAll(destDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create target folder: %w", err)
	}

	files, err := listEligible(opts.SourceDir)
	if err != nil {
		return Result{}, err
	}

	var result Result
	report := func(name string, b *bucket.Definition) {
		if onProgress != nil {
			onProgress(Progress{Processed: result.Total(), CurrentFile: name, Bucket: b})
		}
	}

	for _, name := range files {
		select {
		case <-ctx.Done():
			p.log.Info().Int("processed", result.Total()).Msg("batch cancelled")
			return result, nil
		default:
		}

		srcPath := filepath.Join(opts.SourceDir, name)
		destPath := filepath.Join(destDir, name)

		if opts.SkipUnchanged && upToDate(srcPath, destPath) {
			result.Skipped++
			report(name, nil)
			continue
		}

		selected, err := p.processFile(srcPath, destPath, opts)
		if err != nil {
			result.Failed++
			p.log.Warn().Err(err).Str("file", name).Msg("file failed")
			report(name, nil)
			continue
		}

		result.Succeeded++
		report(name, &selected)
	}

	return result, nil
}

func validate(opts Options) error {
	if len(opts.Buckets) == 0 {
		return ErrNoBuckets
	}
	if opts.Mode == fitplan.ModePad && opts.Fill == nil {
		return ErrNoFillOptions
	}
	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingSource, opts.SourceDir)
	}
	return nil
}

// upToDate reports whether the destination exists and is not older than the
// source. Overwrite-in-place compares a file against itself, which is
// always current.
func upToDate(srcPath, destPath string) bool {
	destInfo, err := os.Stat(destPath)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false
	}
	return !destInfo.ModTime().Before(srcInfo.ModTime())
}

// processFile runs the full per-file pipeline and returns the bucket the
// planner selected.
func (p *Processor) processFile(srcPath, destPath string, opts Options) (bucket.Definition, error) {
	img, err := imagecodec.Decode(srcPath)
	if err != nil {
		return bucket.Definition{}, err
	}

	bounds := img.Bounds()
	plan, err := fitplan.Compute(bounds.Dx(), bounds.Dy(), opts.Buckets, opts.Mode, opts.MaxLongestSide)
	if err != nil {
		return bucket.Definition{}, err
	}

	var out image.Image
	switch plan.Mode {
	case fitplan.ModePad:
		out = p.renderPad(img, plan, *opts.Fill, filepath.Base(srcPath))
	default:
		out = renderCrop(img, plan)
	}

	if err := writeAtomic(out, destPath, opts.Quality); err != nil {
		return bucket.Definition{}, err
	}
	return plan.Bucket, nil
}

func renderCrop(img image.Image, plan fitplan.Plan) image.Image {
	rect := plan.CropRect.Add(img.Bounds().Min)
	out := imaging.Crop(img, rect)
	if plan.Scaled() {
		return imaging.Resize(out, plan.OutputWidth, plan.OutputHeight, imaging.Lanczos)
	}
	return out
}

// renderPad builds the pad canvas, fills the margins, and composites the
// sharp source on top. A failing fill strategy degrades to the black
// fallback; the file still counts as a success.
func (p *Processor) renderPad(img image.Image, plan fitplan.Plan, fillOpts fill.Options, name string) image.Image {
	canvas := imaging.New(plan.CanvasWidth, plan.CanvasHeight, color.NRGBA{})
	srcRect := image.Rectangle{Min: plan.Origin, Max: plan.Origin.Add(img.Bounds().Size())}

	strategy := fill.ForOptions(fillOpts)
	if err := strategy.Fill(canvas, img, srcRect); err != nil {
		p.log.Warn().Err(err).Str("file", name).Stringer("fill", fillOpts.Mode).
			Msg("fill strategy failed, falling back to solid black")
		_ = fill.Fallback.Fill(canvas, img, srcRect)
	}
	draw.Draw(canvas, srcRect, img, img.Bounds().Min, draw.Src)

	if plan.Scaled() {
		return imaging.Resize(canvas, plan.OutputWidth, plan.OutputHeight, imaging.Lanczos)
	}
	return canvas
}

// writeAtomic encodes to a temp file next to the destination and renames it
// into place, so a cancelled or crashed run never leaves half-written
// output.
func writeAtomic(img image.Image, destPath string, quality int) error {
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, ".bucketcrop-*"+filepath.Ext(destPath))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := imagecodec.Encode(tmp, img, filepath.Ext(destPath), quality); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	// CreateTemp makes the file 0600; outputs should be readable like any
	// other image in the dataset.
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(destPath), err)
	}
	return nil
}
