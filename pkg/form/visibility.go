package form

import "sync"

// PasswordVisibility decides whether a password input renders as plain text.
// It never affects validation.
type PasswordVisibility struct {
	mu      sync.RWMutex
	visible bool
}

// Toggle flips the flag and returns the new value.
func (p *PasswordVisibility) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = !p.visible
	return p.visible
}

func (p *PasswordVisibility) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

// InputType returns the HTML input type for the current state.
func (p *PasswordVisibility) InputType() string {
	if p.Visible() {
		return "text"
	}
	return "password"
}
