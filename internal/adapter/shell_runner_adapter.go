package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	m "github.com/gspu/critic/internal/model"
)

// ShellRunner abstracts execution of one spec file under the
// interpreter's debug tracer.
type ShellRunner interface {
	// Run executes the spec file and fills the session's trace log and
	// symbol dump. It returns the script's exit code; a non-zero exit is
	// data, not an error.
	Run(ctx context.Context, spec m.Path, session *TraceSession) (int, error)
}

// LocalShellRunner runs spec files with a local bash via os/exec.
type LocalShellRunner struct {
	shell   string
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// NewLocalShellRunner constructs a runner for the given interpreter.
// Spec output is forwarded to the provided writers so assertion results
// reach the user unchanged.
func NewLocalShellRunner(shell string, timeout time.Duration, stdout, stderr io.Writer) *LocalShellRunner {
	return &LocalShellRunner{shell: shell, timeout: timeout, stdout: stdout, stderr: stderr}
}

// bootstrapTemplate is the harness-side shim: route xtrace to the trace
// fd with a PS4 that names file, line and enclosing function, source the
// spec file, then dump every declared function's provenance (extdebug
// makes `declare -F name` print `name line file`).
const bootstrapTemplate = `exec {__critic_fd}>>%q
export BASH_XTRACEFD=$__critic_fd
shopt -s extdebug
PS4='(${BASH_SOURCE}:${LINENO}): ${FUNCNAME[0]:+${FUNCNAME[0]}(): }'
set -x
source %q
__critic_status=$?
set +x
while read -r __critic_fn; do
  declare -F "${__critic_fn#declare -f }"
done < <(declare -F) >%q
exit $__critic_status
`

// Run writes the bootstrap script into the session and executes it.
func (r *LocalShellRunner) Run(ctx context.Context, spec m.Path, session *TraceSession) (int, error) {
	bootstrap := fmt.Sprintf(bootstrapTemplate,
		string(session.TracePath), string(spec), string(session.SymbolsPath))

	if err := os.WriteFile(string(session.HarnessPath), []byte(bootstrap), 0o700); err != nil {
		return 0, fmt.Errorf("write bootstrap: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.shell, string(session.HarnessPath))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("pipe stdout: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, fmt.Errorf("pipe stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", r.shell, err)
	}

	// Both pipes must be drained while the script runs or a chatty spec
	// would deadlock against a full pipe buffer.
	group := new(errgroup.Group)
	group.Go(func() error {
		_, copyErr := io.Copy(r.stdout, stdout)
		return copyErr
	})
	group.Go(func() error {
		_, copyErr := io.Copy(r.stderr, stderr)
		return copyErr
	})

	pumpErr := group.Wait()

	err = cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			slog.Debug("spec exited non-zero", "spec", spec, "code", exitErr.ExitCode())
			return exitErr.ExitCode(), nil
		}

		return 0, fmt.Errorf("run %s: %w", spec, err)
	}

	if pumpErr != nil {
		slog.Warn("spec output truncated", "spec", spec, "error", pumpErr)
	}

	return 0, nil
}
