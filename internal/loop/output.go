package loop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loopify/internal/fileutil"
)

// target describes the resolved output destination for one run.
type target struct {
	source    string // canonical input path
	dest      string // destination path as it will be written
	canonical string // canonical destination path, returned to the caller
	samePath  bool   // destination aliases the source
	ext       string // extension driving codec selection and temp naming
}

// resolveTarget derives the destination for source. With no explicit output
// the destination sits next to the source with suffix spliced in before the
// extension. Source and destination are canonicalized so symlinks, relative
// segments, and redundant separators cannot hide same-file aliasing. The
// destination parent directory must already exist.
func resolveTarget(source, outputPath, suffix string) (target, error) {
	canonicalSource, err := fileutil.CanonicalPath(source)
	if err != nil {
		return target{}, Wrap(ErrInputNotFound, "output", "resolve input path", err)
	}

	var dest string
	if strings.TrimSpace(outputPath) == "" {
		ext := filepath.Ext(source)
		stem := strings.TrimSuffix(filepath.Base(source), ext)
		dest = filepath.Join(filepath.Dir(source), fmt.Sprintf("%s.%s%s", stem, suffix, ext))
	} else {
		dest, err = filepath.Abs(outputPath)
		if err != nil {
			return target{}, Wrap(ErrOutputDirMissing, "output", "resolve output path", err)
		}
	}

	parent := filepath.Dir(dest)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return target{}, Wrap(ErrOutputDirMissing, "output", fmt.Sprintf("output directory does not exist: %s", parent), nil)
	}

	canonicalDest, err := fileutil.CanonicalPath(dest)
	if err != nil {
		return target{}, Wrap(ErrOutputDirMissing, "output", "resolve output path", err)
	}

	ext := filepath.Ext(source)
	if ext == "" {
		ext = filepath.Ext(dest)
	}

	return target{
		source:    canonicalSource,
		dest:      dest,
		canonical: canonicalDest,
		samePath:  canonicalSource == canonicalDest,
		ext:       ext,
	}, nil
}

// destExt returns the extension used for codec selection: the destination's,
// falling back to the source's.
func (t target) destExt() string {
	if ext := filepath.Ext(t.dest); ext != "" {
		return ext
	}
	return filepath.Ext(t.source)
}

// applyOverwritePolicy enforces the destination rules before any work runs.
// An existing destination is only replaced under force; a forced overwrite of
// a distinct file removes it up front so ffmpeg writes a fresh file. The
// same-path rule guards the only copy of the input.
func applyOverwritePolicy(t target, force bool) error {
	if _, err := os.Stat(t.dest); err == nil {
		if !force {
			return Wrap(ErrOverwriteRefused, "output", fmt.Sprintf("refusing to overwrite existing file: %s", t.dest), nil)
		}
		if !t.samePath {
			if err := os.Remove(t.dest); err != nil {
				return Wrap(ErrOverwriteRefused, "output", "remove existing destination", err)
			}
		}
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wrap(ErrOverwriteRefused, "output", "inspect destination", err)
	}
	if t.samePath && !force {
		return Wrap(ErrOverwriteRefused, "output", "refusing to overwrite input file without force", nil)
	}
	return nil
}

// commitCopy writes the source bytes to the destination, used when the run is
// a no-op. A same-path destination is staged to a sibling temporary file and
// swapped into place with one rename so the original is never left partially
// overwritten; the staging file is removed if the swap fails.
func commitCopy(t target) error {
	if !t.samePath {
		return fileutil.CopyFileVerified(t.source, t.dest)
	}

	staged, err := os.CreateTemp(filepath.Dir(t.dest), ".loopify-*"+t.ext)
	if err != nil {
		return fmt.Errorf("stage copy: %w", err)
	}
	stagedPath := staged.Name()
	if err := staged.Close(); err != nil {
		_ = os.Remove(stagedPath)
		return err
	}
	if err := fileutil.CopyFileVerified(t.source, stagedPath); err != nil {
		_ = os.Remove(stagedPath)
		return err
	}
	if err := os.Rename(stagedPath, t.dest); err != nil {
		_ = os.Remove(stagedPath)
		return fmt.Errorf("swap copy into place: %w", err)
	}
	return nil
}
