package loop

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"loopify/internal/config"
	"loopify/internal/fileutil"
	"loopify/internal/logging"
	"loopify/internal/media/ffprobe"
)

// Request describes one rotation run.
type Request struct {
	// Input is the source audio file.
	Input string
	// CutSeconds is the rotation point; negative values count back from the
	// end, values beyond the duration wrap around.
	CutSeconds float64
	// OutputPath overrides the default destination (source name with the
	// configured suffix spliced in). Empty means default.
	OutputPath string
	// Force allows replacing an existing destination, including the source
	// itself.
	Force bool
}

// Service runs the rotation pipeline. External collaborators are injectable
// so tests never need a real audio toolchain.
type Service struct {
	ffmpeg  string
	ffprobe string
	suffix  string
	force   bool
	logger  *slog.Logger
	run     commandRunner
	inspect inspector
}

// Option customizes a Service.
type Option func(*Service)

// WithCommandRunner substitutes the transcoding collaborator (for testing).
func WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) Option {
	return func(s *Service) {
		if runner != nil {
			s.run = runner
		}
	}
}

// WithInspector substitutes the duration-probing collaborator (for testing).
func WithInspector(inspect func(ctx context.Context, path string) (ffprobe.Result, error)) Option {
	return func(s *Service) {
		if inspect != nil {
			s.inspect = inspect
		}
	}
}

// NewService constructs the pipeline from configuration.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	s := &Service{
		ffmpeg:  cfg.Tools.FFmpeg,
		ffprobe: cfg.Tools.FFprobe,
		suffix:  cfg.Output.Suffix,
		force:   cfg.Output.Overwrite,
		logger:  logging.NewComponentLogger(logger, "loop"),
		run:     defaultCommandRunner,
	}
	s.inspect = func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, s.ffprobe, path)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the pipeline and returns the canonical path of the written
// output. Either a complete destination file exists afterwards or none does;
// all intermediate artifacts are removed on every exit path.
func (s *Service) Run(ctx context.Context, req Request) (string, error) {
	if math.IsNaN(req.CutSeconds) || math.IsInf(req.CutSeconds, 0) {
		return "", Wrap(ErrInvalidCut, "normalize", "cut seconds must be a finite number", nil)
	}

	input, err := filepath.Abs(req.Input)
	if err != nil {
		return "", Wrap(ErrInputNotFound, "input", "resolve input path", err)
	}
	info, err := os.Stat(input)
	if err != nil || info.IsDir() {
		return "", Wrap(ErrInputNotFound, "input", fmt.Sprintf("input file not found: %s", input), nil)
	}

	duration, err := s.probeDuration(ctx, input)
	if err != nil {
		return "", err
	}

	tgt, err := resolveTarget(input, req.OutputPath, s.suffix)
	if err != nil {
		return "", err
	}

	unlock, err := lockDestination(tgt.canonical)
	if err != nil {
		return "", err
	}
	defer unlock()

	force := req.Force || s.force
	if err := applyOverwritePolicy(tgt, force); err != nil {
		return "", err
	}

	cut, noop, err := NormalizeCut(req.CutSeconds, duration)
	if err != nil {
		return "", err
	}
	if noop {
		if err := commitCopy(tgt); err != nil {
			return "", Wrap(ErrOverwriteRefused, "output", "copy input to destination", err)
		}
		s.logger.Info("no rotation needed, copied input",
			slog.String("output", tgt.canonical),
			slog.Float64("duration", duration))
		return tgt.canonical, nil
	}

	workDir := filepath.Join(os.TempDir(), "loopify-"+uuid.NewString())
	if err := os.Mkdir(workDir, 0o700); err != nil {
		return "", Wrap(ErrSplit, "split", "create working directory", err)
	}
	defer os.RemoveAll(workDir)

	tail, head, err := s.splitSegments(ctx, input, workDir, tgt.ext, cut)
	if err != nil {
		return "", err
	}

	workOutput := tgt.dest
	if tgt.samePath {
		workOutput = filepath.Join(workDir, "output"+tgt.ext)
	}
	listPath := filepath.Join(workDir, "concat.txt")

	strategy, err := s.concatSegments(ctx, tail, head, listPath, workOutput, tgt.destExt())
	if err != nil {
		return "", err
	}

	if tgt.samePath {
		if err := fileutil.ReplaceFile(workOutput, tgt.dest); err != nil {
			return "", Wrap(ErrJoin, "output", "swap result into place", err)
		}
	}

	s.logger.Info("rotated audio",
		slog.String("output", tgt.canonical),
		slog.Float64("cut", cut),
		slog.Float64("duration", duration),
		slog.String("strategy", strategy))
	return tgt.canonical, nil
}

// lockDestination serializes runs that write the same destination. The lock
// file lives in the system temp directory, keyed by the canonical path, so
// nothing is left next to the user's output.
func lockDestination(canonical string) (func(), error) {
	sum := sha256.Sum256([]byte(canonical))
	lockPath := filepath.Join(os.TempDir(), "loopify-"+hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrDestinationBusy, "output", "acquire destination lock", err)
	}
	if !locked {
		return nil, Wrap(ErrDestinationBusy, "output", fmt.Sprintf("another run is writing %s", canonical), nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
