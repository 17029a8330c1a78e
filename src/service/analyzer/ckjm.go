package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"di-quality/src/config"
	"di-quality/src/util"
)

// Executor runs the external analyzer over a set of class files and
// returns its standard output as lines.
type Executor interface {
	Run(ctx context.Context, classFiles []string) ([]string, error)
}

// CKJM invokes `java -jar <jar> <class files...>`. Standard error is
// captured only for error reporting and never mixed into the output.
type CKJM struct {
	java    string
	jar     string
	timeout time.Duration
}

// NewCKJM creates an executor from analyzer config
func NewCKJM(cfg config.AnalyzerConfig) *CKJM {
	return &CKJM{
		java:    cfg.Java,
		jar:     cfg.Jar,
		timeout: cfg.Timeout,
	}
}

// Run executes the analyzer, honouring ctx and the configured timeout
func (c *CKJM) Run(ctx context.Context, classFiles []string) ([]string, error) {
	if len(classFiles) == 0 {
		return nil, nil
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := c.command(ctx, classFiles)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	util.Debug("Running %s -jar %s over %d class files", c.java, c.jar, len(classFiles))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("analyzer interrupted: %w", ctxErr)
		}
		return nil, &ExecError{Command: c.java + " -jar " + c.jar, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	util.Debug("Analyzer finished in %v (%d bytes of output)", time.Since(start), stdout.Len())

	return ReadLines(&stdout)
}

// command builds the analyzer invocation. ckjm reads class files from
// stdin when given no arguments, which keeps large projects under ARG_MAX.
func (c *CKJM) command(ctx context.Context, classFiles []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.java, "-jar", c.jar)
	cmd.Stdin = strings.NewReader(strings.Join(classFiles, "\n") + "\n")
	return cmd
}

// ExecError reports a failed analyzer invocation
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("analyzer %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("analyzer %q failed: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ExitCode returns the analyzer's exit status, or -1 if it did not exit
func (e *ExecError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
