package entity

// Credentials is the login bundle for the target site. It lives only for
// the duration of one invocation.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// String keeps credentials out of %v/%s formatting.
func (c Credentials) String() string {
	return "Credentials{username:[REDACTED], password:[REDACTED]}"
}

func (c Credentials) GoString() string {
	return c.String()
}

// SessionAttributes returns the out-of-band attributes passed to the agent.
func (c Credentials) SessionAttributes() map[string]string {
	return map[string]string{
		"username": c.Username,
		"password": c.Password,
	}
}
