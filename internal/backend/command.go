package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// CommandBackend exposes an external executable as a backing package.
// Each prediction call runs "<binary> <function>" with a JSON request on
// stdin and decodes the JSON document printed on stdout.
type CommandBackend struct {
	name     string
	executor *Executor
}

// commandRequest is written to the command's stdin.
type commandRequest struct {
	Function string `json:"function"`
	Args     []any  `json:"args"`
}

// NewCommandBackend creates a backend named name that runs binary.
// It fails when binary cannot be found.
func NewCommandBackend(name, binary string, timeout time.Duration) (*CommandBackend, error) {
	executor, err := NewExecutor(binary, timeout)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}

	return NewCommandBackendWithExecutor(name, executor), nil
}

// NewCommandBackendWithExecutor creates a command backend around an existing executor.
func NewCommandBackendWithExecutor(name string, executor *Executor) *CommandBackend {
	return &CommandBackend{
		name:     name,
		executor: executor,
	}
}

// Name returns the import name.
func (b *CommandBackend) Name() string {
	return b.name
}

// Function returns a PredictFunc that invokes the command with fn as its
// first argument. Any function name is accepted; the command decides.
func (b *CommandBackend) Function(fn string) (PredictFunc, error) {
	if strings.TrimSpace(fn) == "" {
		return nil, fmt.Errorf("%w: %s has no function named %q", ErrFunctionNotFound, b.name, fn)
	}

	return func(ctx context.Context, args ...any) (any, error) {
		if args == nil {
			args = []any{}
		}

		payload, err := json.Marshal(commandRequest{Function: fn, Args: args})
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments: %w", err)
		}

		slog.Debug("Running command backend", "backend", b.name, "function", fn, "binary", b.executor.BinaryPath())

		stdout, stderr, err := b.executor.Execute(ctx, []string{fn}, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%s.%s failed: %w\nstderr: %s", b.name, fn, err, stderr)
		}

		var result any
		if len(bytes.TrimSpace(stdout)) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(stdout, &result); err != nil {
			return nil, fmt.Errorf("%s.%s returned invalid JSON: %w", b.name, fn, err)
		}

		return result, nil
	}, nil
}

// Close cleans up resources. Commands hold none between calls.
func (b *CommandBackend) Close() error {
	return nil
}
