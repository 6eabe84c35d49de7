package service

import "github.com/shreebalaji/traders-console/internal/core/domain"

// Paths the authorizer and the login flow redirect to.
const (
	LoginPath           = "/login"
	AdminHomePath       = "/admin/dashboard"
	ClientHomePath      = "/client/dashboard"
	AdminSubtreePrefix  = "/admin"
	ClientSubtreePrefix = "/client"
)

// Verdict is the outcome of a route authorization check.
type Verdict int

const (
	// Wait means the session is still being hydrated; render nothing
	// protected yet.
	Wait Verdict = iota
	// Permit means the subtree may be rendered.
	Permit
	// Redirect means the caller must send the user to LoginPath.
	Redirect
)

func (v Verdict) String() string {
	switch v {
	case Wait:
		return "wait"
	case Permit:
		return "permit"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// SessionReader is the read side of SessionStore.
type SessionReader interface {
	Loading() bool
	Current() (domain.Session, bool)
}

// Authorize decides whether a subtree that requires role may be rendered
// for the session held by r. It is evaluated on every request and never
// cached; there is no elevation from one role to another.
func Authorize(r SessionReader, required domain.Role) Verdict {
	if r == nil {
		return Redirect
	}
	if r.Loading() {
		return Wait
	}
	sess, ok := r.Current()
	if !ok || !sess.Complete() || sess.Role != required {
		return Redirect
	}
	return Permit
}

// HomeFor returns where a freshly logged-in user of role lands.
func HomeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return AdminHomePath
	case domain.RoleClient:
		return ClientHomePath
	default:
		return LoginPath
	}
}
