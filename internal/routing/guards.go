package routing

import "github.com/you/expensefront/domain"

// DecisionKind enumerates the outcomes of a route resolution
type DecisionKind int

const (
	// DecisionPending means auth state is still settling; render a
	// full-page loading indicator and nothing routable
	DecisionPending DecisionKind = iota
	// DecisionRender means the view may be shown
	DecisionRender
	// DecisionRedirect means navigation must move to Target first
	DecisionRedirect
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionPending:
		return "pending"
	case DecisionRender:
		return "render"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of resolving a path against the auth snapshot.
// Exactly one of View or Target is set, depending on Kind.
type Decision struct {
	Kind   DecisionKind
	View   string
	Target string
}

// Pending returns the hold-rendering decision
func Pending() Decision {
	return Decision{Kind: DecisionPending}
}

// Render returns a decision to show the named view
func Render(view string) Decision {
	return Decision{Kind: DecisionRender, View: view}
}

// Redirect returns a decision to navigate to target
func Redirect(target string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target}
}

// Guards are pure functions over the snapshot: they never mutate session
// state and never touch the network.

// Private admits any authenticated user with an identity. While auth state
// is loading the decision is withheld so no unauthenticated content flashes.
func Private(snap domain.AuthSnapshot, view string) Decision {
	if snap.Loading {
		return Pending()
	}
	if !snap.IsAuthenticated() || snap.User == nil {
		return Redirect(PathLogin)
	}
	return Render(view)
}

// AdminOnly admits authenticated admins; other roles land on their own
// dashboard instead of an error page.
func AdminOnly(snap domain.AuthSnapshot, view string) Decision {
	d := Private(snap, view)
	if d.Kind != DecisionRender {
		return d
	}
	if !snap.HasRole(domain.RoleAdmin) {
		return Redirect(PathDashboard)
	}
	return d
}

// SalesRepOnly admits authenticated non-admins; admins are sent to the
// admin dashboard.
func SalesRepOnly(snap domain.AuthSnapshot, view string) Decision {
	d := Private(snap, view)
	if d.Kind != DecisionRender {
		return d
	}
	if snap.HasRole(domain.RoleAdmin) {
		return Redirect(PathAdminDashboard)
	}
	return d
}
