package ui

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acsLauncher/internal/models"
	"acsLauncher/internal/ui/messages"
)

type recordingSender struct {
	msgs chan tea.Msg
}

func newRecordingSender() *recordingSender {
	return &recordingSender{msgs: make(chan tea.Msg, 8)}
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.msgs <- msg
}

func TestCheckReady(t *testing.T) {
	sys := &models.System{Name: "PROD", Label: "Production", Users: []string{"QSECOFR"}}
	fn := &models.Function{ID: "5250", Label: "5250 Emulator", LaunchCmd: "{acs_exe} {hod_file}", SystemFields: []string{"hod_file"}}
	plain := &models.Function{ID: "cfg", LaunchCmd: "{acs_exe} /PLUGIN=cfg"}

	tests := []struct {
		name   string
		system *models.System
		user   string
		fn     *models.Function
		ok     bool
		want   string
	}{
		{"no system", nil, "", plain, false, "No systems configured - add one to config.json"},
		{"no user", sys, "", plain, false, "System 'Production' has no users"},
		{"no function", sys, "QSECOFR", nil, false, "No functions configured"},
		{"missing field", sys, "QSECOFR", fn, false, "System 'Production' is missing required fields: hod_file"},
		{"ready", sys, "QSECOFR", plain, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, why := CheckReady(tt.system, tt.user, tt.fn)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, why)
		})
	}
}

func TestProgramPresenter_Notify(t *testing.T) {
	s := newRecordingSender()
	p := NewProgramPresenter(s)

	p.Notify("Launching...")
	p.NotifyError("Logon failed: CPF1120")

	assert.Equal(t, messages.StatusMsg{Text: "Launching..."}, <-s.msgs)
	assert.Equal(t, messages.StatusMsg{Text: "Logon failed: CPF1120", IsError: true}, <-s.msgs)
}

func TestProgramPresenter_PromptPassword(t *testing.T) {
	s := newRecordingSender()
	p := NewProgramPresenter(s)

	go func() {
		msg := (<-s.msgs).(messages.PasswordPromptMsg)
		msg.Reply <- messages.PasswordReply{Password: "secret", Persist: true, OK: true}
	}()

	pw, persist, ok := p.PromptPassword(context.Background(), "PROD", "QSECOFR")
	assert.True(t, ok)
	assert.True(t, persist)
	assert.Equal(t, "secret", pw)
}

func TestProgramPresenter_PromptCancelledByContext(t *testing.T) {
	s := newRecordingSender()
	p := NewProgramPresenter(s)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, _, ok := p.PromptPassword(ctx, "PROD", "QSECOFR")
		done <- ok
	}()

	msg := (<-s.msgs).(messages.PasswordPromptMsg)
	assert.Equal(t, "PROD", msg.System)
	assert.Equal(t, "QSECOFR", msg.User)
	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not return after cancel")
	}
}

func pipeWith(t *testing.T, input string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestTerminalPresenter_PromptPassword(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(pipeWith(t, "secret\ny\n"), &out)

	pw, persist, ok := p.PromptPassword(context.Background(), "PROD", "QSECOFR")
	assert.True(t, ok)
	assert.True(t, persist)
	assert.Equal(t, "secret", pw)
	assert.Contains(t, out.String(), "Password for QSECOFR@PROD: ")
}

func TestTerminalPresenter_EmptyPasswordAccepted(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(pipeWith(t, "\n\n"), &out)

	pw, persist, ok := p.PromptPassword(context.Background(), "PROD", "QSECOFR")
	assert.True(t, ok)
	assert.False(t, persist)
	assert.Equal(t, "", pw)
}

func TestTerminalPresenter_EndOfInputCancels(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(pipeWith(t, ""), &out)

	_, _, ok := p.PromptPassword(context.Background(), "PROD", "QSECOFR")
	assert.False(t, ok)
	assert.NotContains(t, out.String(), "Save to keyring")
}

func TestTerminalPresenter_PromptCancelledByContext(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		w.Close()
		r.Close()
	})

	var out bytes.Buffer
	p := NewTerminalPresenter(r, &out)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, _, ok := p.PromptPassword(ctx, "PROD", "QSECOFR")
		done <- ok
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt still blocked after cancel")
	}
}

func TestTerminalPresenter_Failed(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(pipeWith(t, ""), &out)

	p.Notify("Launching...")
	assert.False(t, p.Failed())
	p.NotifyError("Launch failed (rc=1): bad option")
	assert.True(t, p.Failed())
	assert.Contains(t, out.String(), "bad option")
}

func TestPanelWidths(t *testing.T) {
	left, right := PanelWidths(40)
	assert.Equal(t, 30, left)
	assert.Equal(t, 30, right)

	left, right = PanelWidths(113)
	assert.Equal(t, 101, left+right)
	assert.Equal(t, 50, left)
}

func TestSwitchTheme(t *testing.T) {
	start := CurrentTheme().Name
	seen := map[string]bool{}
	for i := 0; i < len(themes); i++ {
		seen[SwitchTheme()] = true
	}
	assert.Len(t, seen, len(themes))
	assert.Equal(t, start, CurrentTheme().Name)
}

func TestCreateLipglossTable(t *testing.T) {
	out := CreateLipglossTable([]string{"System", "Users"}, [][]string{{"PROD", "QSECOFR"}})
	assert.Contains(t, out, "System")
	assert.Contains(t, out, "QSECOFR")
}
