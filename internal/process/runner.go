// internal/process/runner.go

// Package process spawns the external ACS client processes: a blocking logon
// whose verdict is read from its output, and a detached launch that is only
// watched long enough to catch an immediate crash.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"acsLauncher/internal/models"
)

const (
	DefaultGracePeriod     = 2 * time.Second
	DefaultSuccessExitWait = 5 * time.Second

	// Limity przechwytywanego stderr
	stderrCaptureLimit = 4096
	stderrMessageLimit = 200
	stderrDrainWait    = 250 * time.Millisecond

	maxLineLength = 1024 * 1024
)

// Fixed outcome messages.
const (
	MsgLogonSuccessful = "Logon successful"
	MsgLogonTimedOut   = "Logon timed out"
	MsgLaunched        = "Launched successfully"
)

// Outcome is the result of one process step as shown to the user.
type Outcome struct {
	OK      bool
	Message string
}

// Runner runs logon and launch commands. The zero value is not usable; build
// one with NewRunner and adjust the timings if needed.
type Runner struct {
	Classifier      Classifier
	GracePeriod     time.Duration
	SuccessExitWait time.Duration
	Logger          zerolog.Logger
}

// NewRunner returns a Runner with the ACS logon rules and default timings.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		Classifier:      DefaultClassifier(),
		GracePeriod:     DefaultGracePeriod,
		SuccessExitWait: DefaultSuccessExitWait,
		Logger:          logger,
	}
}

// Tokenize splits command with POSIX shell word rules. No shell is involved,
// so values are passed to the program verbatim.
func Tokenize(command string) ([]string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("cannot parse command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}

// RunAuthentication runs a logon command to completion and classifies it from
// its combined output. A failure marker kills the process right away, since
// the ACS logon plugin drops into an interactive prompt instead of exiting.
func (r *Runner) RunAuthentication(ctx context.Context, command string, timeout time.Duration) Outcome {
	args, err := Tokenize(command)
	if err != nil {
		return Outcome{Message: "Logon error: " + err.Error()}
	}
	if timeout <= 0 {
		timeout = models.DefaultLogonTimeout
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return Outcome{Message: "Logon error: " + err.Error()}
	}
	defer pr.Close()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = pw
	cmd.Stderr = pw
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		pw.Close()
		r.Logger.Warn().Str("program", filepath.Base(args[0])).Err(err).Msg("logon spawn failed")
		return Outcome{Message: "Logon error: " + err.Error()}
	}
	pw.Close()

	log := r.Logger.With().
		Str("program", filepath.Base(args[0])).
		Int("pid", cmd.Process.Pid).
		Logger()
	log.Debug().Dur("timeout", timeout).Msg("logon started")

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	exited := make(chan int, 1)
	go func() {
		exited <- exitCode(cmd.Wait())
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var (
		output    []string
		lineCh    = lines
		exitCh    = (<-chan int)(exited)
		rc        int
		hasExited bool
	)
	for lineCh != nil || !hasExited {
		select {
		case line, ok := <-lineCh:
			if !ok {
				lineCh = nil
				continue
			}
			output = append(output, line)

			switch r.Classifier.Classify(line) {
			case Failed:
				r.kill(cmd, log)
				detail := r.Classifier.Detail(output)
				log.Info().Str("verdict", Failed.String()).Msg("logon rejected")
				return Outcome{Message: "Logon failed: " + detail}
			case Succeeded:
				if !hasExited {
					r.awaitExit(cmd, exited, log)
				}
				log.Info().Str("verdict", Succeeded.String()).Msg("logon accepted")
				return Outcome{OK: true, Message: MsgLogonSuccessful}
			}

		case rc = <-exitCh:
			hasExited = true
			exitCh = nil

		case <-timer.C:
			r.kill(cmd, log)
			log.Warn().Int("lines", len(output)).Msg("logon timed out")
			return Outcome{Message: MsgLogonTimedOut}

		case <-ctx.Done():
			r.kill(cmd, log)
			return Outcome{Message: "Logon error: " + ctx.Err().Error()}
		}
	}

	log.Info().Int("rc", rc).Msg("logon exited without a marker")
	if rc == 0 {
		return Outcome{OK: true, Message: MsgLogonSuccessful}
	}
	detail := "no output"
	if len(output) > 0 {
		detail = firstLines(output, 3)
	}
	return Outcome{Message: fmt.Sprintf("Logon failed (rc=%d): %s", rc, detail)}
}

// awaitExit gives a successful logon time to exit on its own.
func (r *Runner) awaitExit(cmd *exec.Cmd, exited <-chan int, log zerolog.Logger) {
	wait := r.SuccessExitWait
	if wait <= 0 {
		wait = DefaultSuccessExitWait
	}
	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case rc := <-exited:
		log.Debug().Int("rc", rc).Msg("logon exited")
	case <-t.C:
		log.Debug().Msg("logon still running after success, killing")
		r.kill(cmd, log)
	}
}

func (r *Runner) kill(cmd *exec.Cmd, log zerolog.Logger) {
	if err := killTree(cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		log.Debug().Err(err).Msg("kill failed")
	}
}

// SpawnDetached starts command in its own session and watches it for the
// grace period. A process that is still running afterwards is left alone.
func (r *Runner) SpawnDetached(ctx context.Context, command string) Outcome {
	args, err := Tokenize(command)
	if err != nil {
		return Outcome{Message: "Launch error: " + err.Error()}
	}
	if err := ctx.Err(); err != nil {
		return Outcome{Message: "Launch error: " + err.Error()}
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return Outcome{Message: "Launch error: " + err.Error()}
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = pw
	setDetached(cmd)

	program := filepath.Base(args[0])
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		r.Logger.Warn().Str("program", program).Err(err).Msg("launch spawn failed")
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Outcome{Message: "Launch error: command not found: " + args[0]}
		}
		return Outcome{Message: "Launch error: " + err.Error()}
	}
	pw.Close()

	log := r.Logger.With().Str("program", program).Int("pid", cmd.Process.Pid).Logger()
	log.Info().Msg("launch started")

	// Pipe jest czytany do końca także po okresie karencji, żeby proces
	// potomny nigdy nie zablokował się na pełnym stderr.
	stderr := &boundedBuffer{limit: stderrCaptureLimit}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		defer pr.Close()
		_, _ = io.Copy(stderr, pr)
	}()

	exited := make(chan int, 1)
	go func() {
		exited <- exitCode(cmd.Wait())
	}()

	grace := r.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case rc := <-exited:
		select {
		case <-drained:
		case <-time.After(stderrDrainWait):
		}
		msg := strings.TrimSpace(stderr.String())
		log.Info().Int("rc", rc).Msg("launch exited within grace period")
		if rc != 0 && msg != "" {
			return Outcome{Message: fmt.Sprintf("Launch failed (rc=%d): %s", rc, truncateRunes(msg, stderrMessageLimit))}
		}
		return Outcome{OK: true, Message: MsgLaunched}

	case <-timer.C:
		log.Debug().Dur("grace", grace).Msg("launch still running, detaching")
		return Outcome{OK: true, Message: MsgLaunched}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// boundedBuffer keeps the first limit bytes written to it and discards the
// rest while still reporting full writes.
type boundedBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
