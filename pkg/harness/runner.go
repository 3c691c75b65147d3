package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// maxDiffLines limits how much of a diff is printed for one failure.
const maxDiffLines = 10

// A Runner executes test subprocesses and reports results. Dir is the
// directory holding golden fixture files.
type Runner struct {
	Dir string
	Out io.Writer
	Log *zap.SugaredLogger

	failures int
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) log() *zap.SugaredLogger {
	if r.Log != nil {
		return r.Log
	}
	return zap.S()
}

// Failures returns how many checks have failed so far.
func (r *Runner) Failures() int {
	return r.failures
}

// Fixture reads a golden file from the runner's fixture directory.
func (r *Runner) Fixture(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Capture runs a command and returns its stdout and exit code. The stderr
// of a failing command is logged at error level.
func (r *Runner) Capture(ctx context.Context, name string, args ...string) (string, int, error) {
	return r.run(ctx, true, name, args...)
}

func (r *Runner) run(ctx context.Context, logStderr bool, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
			err = nil
		}
	}
	if code != 0 && logStderr && stderr.Len() > 0 {
		r.log().Error(strings.TrimRight(stderr.String(), "\n"))
	}
	return stdout.String(), code, err
}

// header prints the "test ::: command ::: label" prefix every check
// reports under.
func (r *Runner) header(test, command, label string) {
	fmt.Fprintf(r.out(), "%s ::: %s ::: %s\t", test, filepath.Base(command), label)
}

func (r *Runner) fail() bool {
	r.failures++
	fmt.Fprintln(r.out(), "FAILED")
	return false
}

func (r *Runner) pass() bool {
	fmt.Fprintln(r.out(), "success")
	return true
}

// Golden runs argv and compares its stdout to the named fixture file,
// reporting success or FAILED plus a trimmed diff.
func (r *Runner) Golden(ctx context.Context, test, label, golden string, argv ...string) bool {
	r.header(test, argv[0], label)
	stdout, code, err := r.Capture(ctx, argv[0], argv[1:]...)
	if err != nil {
		r.log().Errorf("running %s: %v", argv[0], err)
		return r.fail()
	}
	if code != 0 {
		return r.fail()
	}
	want, err := r.Fixture(golden)
	if err != nil {
		r.log().Errorf("reading fixture: %v", err)
		return r.fail()
	}
	if stdout != want {
		ok := r.fail()
		for _, line := range headLines(trimmedDiff(want, stdout), maxDiffLines) {
			fmt.Fprintln(r.out(), line)
		}
		return ok
	}
	return r.pass()
}

// ExpectError runs argv and succeeds only if the command exits nonzero.
// For testing a program's error paths.
func (r *Runner) ExpectError(ctx context.Context, test, label string, argv ...string) bool {
	r.header(test, argv[0], label)
	_, code, err := r.run(ctx, false, argv[0], argv[1:]...)
	if err != nil {
		r.log().Errorf("running %s: %v", argv[0], err)
		return r.fail()
	}
	if code == 0 {
		return r.fail()
	}
	return r.pass()
}
