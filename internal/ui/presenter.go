// internal/ui/presenter.go

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"acsLauncher/internal/ui/messages"
)

// Sender is the part of *tea.Program the presenter needs.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramPresenter delivers launch notifications to the bubbletea event loop.
// Program.Send is unbuffered and blocks until the loop takes the message, so
// notifications arrive in the order they were made and none are dropped.
type ProgramPresenter struct {
	sender Sender
}

func NewProgramPresenter(sender Sender) *ProgramPresenter {
	return &ProgramPresenter{sender: sender}
}

func (p *ProgramPresenter) Notify(message string) {
	p.sender.Send(messages.StatusMsg{Text: message})
}

func (p *ProgramPresenter) NotifyError(message string) {
	p.sender.Send(messages.StatusMsg{Text: message, IsError: true})
}

// PromptPassword shows the password popup and waits for the user. It gives up
// when ctx ends, which happens when the program quits.
func (p *ProgramPresenter) PromptPassword(ctx context.Context, system, user string) (string, bool, bool) {
	reply := make(chan messages.PasswordReply, 1)
	p.sender.Send(messages.PasswordPromptMsg{System: system, User: user, Reply: reply})

	select {
	case r := <-reply:
		if !r.OK {
			return "", false, false
		}
		return r.Password, r.Persist, true
	case <-ctx.Done():
		return "", false, false
	}
}
