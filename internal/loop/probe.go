package loop

import (
	"context"
	"log/slog"
	"math"

	"loopify/internal/media/ffprobe"
)

// inspector abstracts the duration-probing collaborator.
type inspector func(ctx context.Context, path string) (ffprobe.Result, error)

// probeDuration determines the playable duration of the input in seconds.
// The input must carry at least one audio stream and report a duration; a
// reported NaN is treated as a zero-duration input rather than an error,
// matching what ffprobe emits for some degenerate containers.
func (s *Service) probeDuration(ctx context.Context, path string) (float64, error) {
	result, err := s.inspect(ctx, path)
	if err != nil {
		return 0, Wrap(ErrProbe, "probe", "inspect input", err)
	}
	if result.AudioStreamCount() == 0 {
		return 0, Wrap(ErrNoAudioStream, "probe", "input file does not contain an audio stream", nil)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		return 0, Wrap(ErrInvalidDuration, "probe", "container duration", err)
	}
	if math.IsNaN(duration) {
		duration = 0
	}
	s.logger.Debug("probed input",
		slog.String("path", path),
		slog.Float64("duration", duration),
		slog.Int("audio_streams", result.AudioStreamCount()))
	return duration, nil
}
