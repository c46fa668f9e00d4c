package loop

import (
	"context"
	"log/slog"
	"path/filepath"
)

// splitSegments losslessly extracts the two rotation segments from source:
// tail covers [cut, end) and head covers [0, cut). Extraction is a pure
// stream copy with exact timestamp seeking; any failure is fatal because no
// fallback exists at this stage.
func (s *Service) splitSegments(ctx context.Context, source, workDir, ext string, cut float64) (tail, head string, err error) {
	cutText := formatSeconds(cut)
	tail = filepath.Join(workDir, "tail"+ext)
	head = filepath.Join(workDir, "head"+ext)

	if err := s.run(ctx, s.ffmpeg, "-v", "error", "-y", "-i", source, "-ss", cutText, "-c", "copy", tail); err != nil {
		return "", "", Wrap(ErrSplit, "split", "extract tail segment", err)
	}
	if err := s.run(ctx, s.ffmpeg, "-v", "error", "-y", "-i", source, "-t", cutText, "-c", "copy", head); err != nil {
		return "", "", Wrap(ErrSplit, "split", "extract head segment", err)
	}

	s.logger.Debug("split source",
		slog.String("cut", cutText),
		slog.String("tail", tail),
		slog.String("head", head))
	return tail, head, nil
}
