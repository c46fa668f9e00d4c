package testsupport

import (
	"context"
	"os"
	"sync"
)

// Call records one external command invocation observed by a CommandStub.
type Call struct {
	Name string
	Args []string
}

// CommandStub substitutes for the pipeline's command runner in tests. Every
// invocation is recorded; Handler, when set, decides the outcome. Without a
// Handler each call succeeds and materializes a one-byte file at the final
// argument, which is where ffmpeg-style commands place their output.
type CommandStub struct {
	mu      sync.Mutex
	calls   []Call
	Handler func(ctx context.Context, name string, args []string) error
}

// Runner is the func injected in place of the real command runner.
func (s *CommandStub) Runner(ctx context.Context, name string, args ...string) error {
	copied := append([]string(nil), args...)
	s.mu.Lock()
	s.calls = append(s.calls, Call{Name: name, Args: copied})
	s.mu.Unlock()

	if s.Handler != nil {
		return s.Handler(ctx, name, copied)
	}
	if len(copied) > 0 {
		return os.WriteFile(copied[len(copied)-1], []byte{0x42}, 0o644)
	}
	return nil
}

// Calls returns a snapshot of the recorded invocations.
func (s *CommandStub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// HasArg reports whether the call's argument list contains value.
func (c Call) HasArg(value string) bool {
	for _, arg := range c.Args {
		if arg == value {
			return true
		}
	}
	return false
}

// ArgAfter returns the argument following the first occurrence of flag.
func (c Call) ArgAfter(flag string) (string, bool) {
	for i, arg := range c.Args {
		if arg == flag && i+1 < len(c.Args) {
			return c.Args[i+1], true
		}
	}
	return "", false
}
