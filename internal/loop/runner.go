package loop

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandRunner executes an external binary and blocks until it exits.
type commandRunner func(ctx context.Context, name string, args ...string) error

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		message := strings.TrimSpace(string(output))
		if message == "" {
			message = "command failed"
		}
		return fmt.Errorf("%s: %w: %s", filepath.Base(name), err, message)
	}
	return nil
}
