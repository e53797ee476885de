package routing

import (
	"log/slog"
	"strings"

	"github.com/casbin/casbin/v2/util"

	"github.com/you/expensefront/domain"
)

// Router resolves a requested path against the auth snapshot into a render,
// redirect or pending decision. It holds no mutable state of its own: the
// snapshot is the single input, so resolution is repeatable after every
// session transition.
type Router struct {
	routes []Route
	policy domain.RoutePolicy
	logger *slog.Logger
}

// NewRouter creates a router over the default route table
func NewRouter(policy domain.RoutePolicy, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		routes: DefaultRoutes(),
		policy: policy,
		logger: logger,
	}
}

// Resolve maps a path to a decision for the current auth snapshot
func (r *Router) Resolve(path string, snap domain.AuthSnapshot) Decision {
	if snap.Loading {
		return Pending()
	}

	// A token without an identity cannot be role-routed; such a snapshot
	// resolves as public until hydration or logout replaces it.
	if !snap.IsAuthenticated() || snap.User == nil {
		return r.resolvePublic(path)
	}
	return r.resolveAuthenticated(path, snap)
}

func (r *Router) resolvePublic(path string) Decision {
	route, ok := r.match(path)
	if !ok || route.Access != AccessPublic {
		// Everything outside the public subtree funnels to the login view
		return Redirect(PathLogin)
	}
	return Render(route.View)
}

func (r *Router) resolveAuthenticated(path string, snap domain.AuthSnapshot) Decision {
	home := r.homeFor(snap)

	if path == PathRoot {
		return Redirect(home)
	}
	if path == AdminPrefix || path == AdminPrefix+"/" {
		return Redirect(home)
	}

	// The admin subtree is fenced by policy before any route matching, so
	// even unregistered admin paths never render for the wrong role.
	if strings.HasPrefix(path, AdminPrefix+"/") {
		allowed, err := r.policy.Allowed(snap.User.Role, path)
		if err != nil {
			r.logger.Warn("route policy check failed", "path", path, "error", err)
			return Redirect(home)
		}
		if !allowed {
			return Redirect(PathDashboard)
		}
	}

	route, ok := r.match(path)
	if !ok {
		// Unmatched paths resolve through root, which lands on the role home
		return Redirect(PathRoot)
	}

	switch route.Access {
	case AccessPublic:
		// Logged-in users have no business on login or registration views
		return Redirect(home)
	case AccessAdmin:
		return AdminOnly(snap, route.View)
	case AccessSalesRep:
		return SalesRepOnly(snap, route.View)
	default:
		return Private(snap, route.View)
	}
}

// homeFor picks the role dashboard. Role is a closed enum; anything else
// means corrupted state, which resolves to the login view.
func (r *Router) homeFor(snap domain.AuthSnapshot) string {
	if snap.User == nil {
		return PathLogin
	}
	switch snap.User.Role {
	case domain.RoleAdmin:
		return PathAdminDashboard
	case domain.RoleSalesRep:
		return PathDashboard
	default:
		return PathLogin
	}
}

func (r *Router) match(path string) (Route, bool) {
	for _, route := range r.routes {
		if util.KeyMatch2(path, route.Pattern) {
			return route, true
		}
	}
	return Route{}, false
}
