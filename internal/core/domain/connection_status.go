package domain

// ConnectionState is the reconciled link state of a local account. It is one of
// Manual, Connected, NeedsReauth or PendingDisconnect; no other implementations exist.
type ConnectionState interface {
	// Kind returns the wire name of the state ("manual", "active", "error", "pending_disconnect").
	Kind() string
	connectionState()
}

// ConnectionRef identifies the bank connection sub-account an account is matched to.
type ConnectionRef struct {
	ConnectionID string `json:"connectionId"`
	Mask         string `json:"mask,omitempty"`
}

// Manual is the state of an account no bank connection claims.
type Manual struct{}

// Connected is the state of an account linked through a healthy connection.
type Connected struct{ ConnectionRef }

// NeedsReauth is the state of an account whose connection reported an error.
type NeedsReauth struct{ ConnectionRef }

// PendingDisconnect is the state of an account whose connection is being removed. Informational only.
type PendingDisconnect struct{ ConnectionRef }

func (Manual) Kind() string            { return "manual" }
func (Connected) Kind() string         { return string(ConnectionActive) }
func (NeedsReauth) Kind() string       { return string(ConnectionError) }
func (PendingDisconnect) Kind() string { return string(ConnectionPendingDisconnect) }

func (Manual) connectionState()            {}
func (Connected) connectionState()         {}
func (NeedsReauth) connectionState()       {}
func (PendingDisconnect) connectionState() {}

// OffersReauth reports whether the presentation layer should offer re-authentication for s.
func OffersReauth(s ConnectionState) bool {
	_, ok := s.(NeedsReauth)
	return ok
}

// RefOf returns the matched connection of s, or false for Manual.
func RefOf(s ConnectionState) (ConnectionRef, bool) {
	switch v := s.(type) {
	case Connected:
		return v.ConnectionRef, true
	case NeedsReauth:
		return v.ConnectionRef, true
	case PendingDisconnect:
		return v.ConnectionRef, true
	}
	return ConnectionRef{}, false
}
