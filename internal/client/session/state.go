// Package session implements the client's session manager: the single owner
// of the authenticated-user value, the loading flag, the last status message
// and the persisted bearer token. Views read session state through snapshots
// and subscriptions; they never mutate it directly.
package session

// User is the authenticated identity known to the client.
type User struct {
	ID       string
	Username string
}

// MessageKind tags a status message as the outcome of an auth operation.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the user-facing outcome of the most recent auth operation.
type Message struct {
	Kind MessageKind
	Text string
}

// Status is the session lifecycle state. StatusUnknown is transient: it is
// only occupied before the startup verification has settled.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// State is an immutable snapshot of the session manager. Subscribers receive
// one per committed transition; User and Message are copies, safe to keep.
type State struct {
	Status  Status
	User    *User
	Loading bool
	Message *Message
}

// IsAuthenticated reports whether a session is present. It is derived from
// the user value on every call, never cached separately.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Message != nil {
		msg := *s.Message
		out.Message = &msg
	}
	return out
}
