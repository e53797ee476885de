package routing

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/you/expensefront/domain"
)

// routeModel is the enforcer model for client-side navigation. Requests are
// (subject, path); keyMatch2 resolves parameterized segments like
// /expenses/:id.
const routeModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj)
`

// routePolicies seeds the enforcer. Roles are prefixed the same way backend
// policies are, so the two stay greppable against each other.
var routePolicies = [][]string{
	{"role_admin", AdminPrefix},
	{"role_admin", AdminPrefix + "/*"},
	{"role_admin", PathProfile},
	{"role_admin", PathUpdatePassword},
	{"role_sales_rep", PathDashboard},
	{"role_sales_rep", PathExpenses},
	{"role_sales_rep", PathExpenses + "/*"},
	{"role_sales_rep", PathProfile},
	{"role_sales_rep", PathUpdatePassword},
}

// CasbinRoutePolicy answers path-level authorization questions for the
// router. Policies are seeded in code; there is no adapter because the route
// table is fixed at build time.
type CasbinRoutePolicy struct {
	enforcer *casbin.Enforcer
}

// NewRoutePolicy builds the enforcer from the in-code model and policies
func NewRoutePolicy() (*CasbinRoutePolicy, error) {
	m, err := model.NewModelFromString(routeModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse route model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, p := range routePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}
	return &CasbinRoutePolicy{enforcer: enforcer}, nil
}

// Allowed implements domain.RoutePolicy
func (p *CasbinRoutePolicy) Allowed(role domain.Role, path string) (bool, error) {
	allowed, err := p.enforcer.Enforce("role_"+string(role), path)
	if err != nil {
		return false, fmt.Errorf("failed to enforce route policy: %w", err)
	}
	return allowed, nil
}

// Compile-time interface compliance verification
var _ domain.RoutePolicy = (*CasbinRoutePolicy)(nil)
