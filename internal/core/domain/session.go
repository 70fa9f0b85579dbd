package domain

// Session is the authenticated-state record governing access: an opaque
// backend token plus the profile it belongs to. Token and user are always
// present together or absent together.
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// Valid reports whether the record satisfies the session invariant
// (token present iff user present).
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// AuthState is the lifecycle phase of the authentication controller.
type AuthState int32

const (
	StateUninitialized AuthState = iota
	StateRestoring
	StateAuthenticated
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// LogoutReason labels why a session ended; carried on the login redirect so
// the UI can explain the logout.
type LogoutReason string

const (
	ReasonManual  LogoutReason = "manual"
	ReasonIdle    LogoutReason = "idle"
	ReasonExpired LogoutReason = "expired"
	ReasonInvalid LogoutReason = "invalid_token"
)
