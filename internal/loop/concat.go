package loop

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Join strategies recorded per run. Lossless is always attempted first; the
// re-encode fallback is the one place audio fidelity may change.
const (
	strategyLosslessCopy   = "lossless-copy"
	strategyFilterReencode = "filter-reencode"
)

// concatSegments joins tail then head into output. It first requests a pure
// stream-level concatenation via the concat demuxer; if the container or
// codec framing rejects that, it decodes both segments through a concat
// filter graph and re-encodes with codec parameters chosen by the
// destination extension. Returns the strategy that succeeded.
func (s *Service) concatSegments(ctx context.Context, tail, head, listPath, output, destExt string) (string, error) {
	if err := writeConcatList(listPath, []string{tail, head}); err != nil {
		return "", Wrap(ErrJoin, "concat", "write segment list", err)
	}

	copyErr := s.run(ctx, s.ffmpeg, "-v", "error", "-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", output)
	if copyErr == nil {
		return strategyLosslessCopy, nil
	}
	s.logger.Debug("lossless join rejected, re-encoding", slog.String("error", copyErr.Error()))

	args := []string{
		"-v", "error", "-y",
		"-i", tail,
		"-i", head,
		"-filter_complex", "[0:a][1:a]concat=n=2:v=0:a=1[out]",
		"-map", "[out]",
	}
	args = append(args, codecArgs(destExt)...)
	args = append(args, output)

	if err := s.run(ctx, s.ffmpeg, args...); err != nil {
		return "", Wrap(ErrJoin, "concat", "re-encode fallback", err)
	}
	return strategyFilterReencode, nil
}

// writeConcatList produces a concat-demuxer list file: one `file '<path>'`
// line per segment in join order.
func writeConcatList(path string, segments []string) error {
	var builder strings.Builder
	for _, segment := range segments {
		builder.WriteString(concatListEntry(segment))
		builder.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(builder.String()), 0o644)
}

// concatListEntry quotes a path for the concat demuxer. Single quotes inside
// the path are escaped by closing the quote, inserting \', and reopening.
func concatListEntry(path string) string {
	escaped := strings.ReplaceAll(path, "'", `'\''`)
	return fmt.Sprintf("file '%s'", escaped)
}

// codecArgs selects re-encode parameters by destination extension.
func codecArgs(ext string) []string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return []string{"-c:a", "libmp3lame", "-q:a", "2"}
	case ".wav":
		return []string{"-c:a", "pcm_s16le"}
	default:
		return []string{"-c:a", "aac", "-b:a", "192k"}
	}
}
