// internal/launch/memo.go

package launch

import "sync"

// AuthMemo remembers the last (system, user) pair that logged on
// successfully. It never expires: a remote session that drops silently is
// not noticed and the next launch for the pair skips the logon.
type AuthMemo struct {
	mu     sync.Mutex
	system string
	user   string
	set    bool
}

// Matches reports whether the memo holds exactly this pair.
func (m *AuthMemo) Matches(system, user string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set && m.system == system && m.user == user
}

// Remember replaces the memo with the given pair.
func (m *AuthMemo) Remember(system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.system, m.user, m.set = system, user, true
}

// Forget clears the memo if it holds this pair.
func (m *AuthMemo) Forget(system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set && m.system == system && m.user == user {
		m.system, m.user, m.set = "", "", false
	}
}
