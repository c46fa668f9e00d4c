package loop

import (
	"errors"
	"fmt"
	"strings"
)

// Failure markers, one per pipeline step that can abort a run. Every failure
// is fatal; the single designed recovery is the concat re-encode fallback.
var (
	ErrInputNotFound    = errors.New("input not found")
	ErrProbe            = errors.New("probe failed")
	ErrNoAudioStream    = errors.New("no audio stream")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidCut       = errors.New("invalid cut")
	ErrOutputDirMissing = errors.New("output directory missing")
	ErrOverwriteRefused = errors.New("overwrite refused")
	ErrDestinationBusy  = errors.New("destination busy")
	ErrSplit            = errors.New("split failed")
	ErrJoin             = errors.New("join failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for classification via errors.Is.
func Wrap(marker error, stage, message string, err error) error {
	detail := buildDetail(stage, message)
	if marker == nil {
		marker = errors.New("pipeline failure")
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, message string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
