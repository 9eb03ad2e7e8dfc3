// internal/ui/terminal.go

package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// TerminalPresenter reports launch progress on a plain terminal for one-shot
// runs without the TUI.
type TerminalPresenter struct {
	mu     sync.Mutex
	out    io.Writer
	in     *os.File
	reader *bufio.Reader
	failed bool

	inflight chan readResult
}

func NewTerminalPresenter(in *os.File, out io.Writer) *TerminalPresenter {
	return &TerminalPresenter{out: out, in: in, reader: bufio.NewReader(in)}
}

func (p *TerminalPresenter) Notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, SuccessStyle.Render(message))
}

func (p *TerminalPresenter) NotifyError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = true
	fmt.Fprintln(p.out, ErrorStyle.Render(message))
}

// Failed reports whether any error was shown.
func (p *TerminalPresenter) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// PromptPassword reads a password without echo when stdin is a terminal, or a
// plain line otherwise. End of input or ctx ending counts as cancel; an empty
// line is an empty password.
func (p *TerminalPresenter) PromptPassword(ctx context.Context, system, user string) (string, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil {
		return "", false, false
	}

	fmt.Fprintf(p.out, "Password for %s@%s: ", user, system)
	password, err := p.readSecret(ctx)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", false, false
	}

	fmt.Fprint(p.out, "Save to keyring? [y/N]: ")
	answer, _ := p.read(ctx, func() (string, error) { return p.reader.ReadString('\n') })
	if ctx.Err() != nil {
		fmt.Fprintln(p.out)
		return "", false, false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return password, answer == "y" || answer == "yes", true
}

type readResult struct {
	text string
	err  error
}

// read runs fn on its own goroutine so ctx can interrupt a blocked read. A read
// abandoned by ctx is picked up by the next call instead of starting another.
func (p *TerminalPresenter) read(ctx context.Context, fn func() (string, error)) (string, error) {
	if p.inflight == nil {
		ch := make(chan readResult, 1)
		p.inflight = ch
		go func() {
			text, err := fn()
			ch <- readResult{text: text, err: err}
		}()
	}
	select {
	case r := <-p.inflight:
		p.inflight = nil
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *TerminalPresenter) readSecret(ctx context.Context) (string, error) {
	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.GetState(fd)
		if err != nil {
			return "", err
		}
		text, err := p.read(ctx, func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		})
		if ctx.Err() != nil {
			// Przywróć echo, ReadPassword nie wróci do czasu Entera
			_ = term.Restore(fd, state)
		}
		return text, err
	}

	line, err := p.read(ctx, func() (string, error) { return p.reader.ReadString('\n') })
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
