package routing

// Navigation paths. The resolver, the guards and the session service
// redirects all reference these constants; no path literal appears twice.
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathForgotPassword = "/forgotpassword"
	PathResetPassword  = "/resetpassword/:token"

	PathDashboard     = "/dashboard"
	PathExpenses      = "/expenses"
	PathExpenseNew    = "/expenses/new"
	PathExpenseDetail = "/expenses/:id"

	AdminPrefix        = "/admin"
	PathAdminDashboard = "/admin/dashboard"
	PathAdminExpenses  = "/admin/expenses"
	PathAdminReports   = "/admin/reports"

	PathProfile        = "/profile"
	PathUpdatePassword = "/updatepassword"
)

// Access names the guard a route sits behind
type Access int

const (
	// AccessPublic routes render without a session
	AccessPublic Access = iota
	// AccessPrivate routes require any authenticated user
	AccessPrivate
	// AccessAdmin routes require the admin role
	AccessAdmin
	// AccessSalesRep routes require a non-admin role
	AccessSalesRep
)

// Route binds a path pattern to a view name and its access level
type Route struct {
	Pattern string
	View    string
	Access  Access
}

// DefaultRoutes is the application's route table
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: PathLogin, View: "login", Access: AccessPublic},
		{Pattern: PathRegister, View: "register", Access: AccessPublic},
		{Pattern: PathForgotPassword, View: "forgot-password", Access: AccessPublic},
		{Pattern: PathResetPassword, View: "reset-password", Access: AccessPublic},

		{Pattern: PathDashboard, View: "dashboard", Access: AccessSalesRep},
		{Pattern: PathExpenseNew, View: "expense-new", Access: AccessSalesRep},
		{Pattern: PathExpenseDetail, View: "expense-detail", Access: AccessSalesRep},
		{Pattern: PathExpenses, View: "expense-list", Access: AccessSalesRep},

		{Pattern: PathAdminDashboard, View: "admin-dashboard", Access: AccessAdmin},
		{Pattern: PathAdminExpenses, View: "admin-expense-list", Access: AccessAdmin},
		{Pattern: PathAdminReports, View: "admin-reports", Access: AccessAdmin},

		{Pattern: PathProfile, View: "profile", Access: AccessPrivate},
		{Pattern: PathUpdatePassword, View: "update-password", Access: AccessPrivate},
	}
}
