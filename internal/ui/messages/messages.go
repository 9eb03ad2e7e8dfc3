package messages

// StatusMsg is a notification for the status line.
type StatusMsg struct {
	Text    string
	IsError bool
}

// PasswordReply answers a PasswordPromptMsg.
type PasswordReply struct {
	Password string
	Persist  bool
	OK       bool
}

// PasswordPromptMsg asks the UI for a password. The view must send exactly
// one reply; Reply is buffered so sending never blocks.
type PasswordPromptMsg struct {
	System string
	User   string
	Reply  chan<- PasswordReply
}

// LaunchFinishedMsg ends the in-flight launch attempt.
type LaunchFinishedMsg struct {
	OK  bool
	Err error
}
