package gate

import "github.com/dmitrijs2005/dashshell/internal/client/models"

// Page names the views behind the routes.
type Page string

const (
	PageLogin        Page = "login"
	PageUnauthorized Page = "unauthorized"
	PageDashboard    Page = "dashboard"
	PageProfile      Page = "profile"
	PageAnalytics    Page = "analytics"
	PageSettings     Page = "settings"
	PageNotFound     Page = "not_found"
)

// Route binds a path to a page and its access rule.
type Route struct {
	Path         string
	Page         Page
	Title        string
	Protected    bool
	AllowedRoles []models.Role
}

const (
	HomePath      = "/"
	DashboardPath = "/dashboard"
)

var adminOnly = []models.Role{models.RoleAdmin}

// Routes is the navigation table. "/" redirects to /dashboard; every other
// path not listed is not found.
var Routes = []Route{
	{Path: LoginPath, Page: PageLogin, Title: "Sign in"},
	{Path: UnauthorizedPath, Page: PageUnauthorized, Title: "Access denied"},
	{Path: DashboardPath, Page: PageDashboard, Title: "Dashboard", Protected: true},
	{Path: "/profile", Page: PageProfile, Title: "Profile", Protected: true},
	{Path: "/analytics", Page: PageAnalytics, Title: "Analytics", Protected: true, AllowedRoles: adminOnly},
	{Path: "/settings", Page: PageSettings, Title: "Settings", Protected: true, AllowedRoles: adminOnly},
}

// Lookup resolves path to a route. The home path resolves to the dashboard.
func Lookup(path string) (Route, bool) {
	if path == HomePath || path == "" {
		path = DashboardPath
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{Path: path, Page: PageNotFound, Title: "Not found"}, false
}

// Visible lists the protected routes a user may open, in menu order.
func Visible(u *models.User) []Route {
	var out []Route
	for _, r := range Routes {
		if !r.Protected {
			continue
		}
		if len(r.AllowedRoles) > 0 && !roleAllowed(u, r.AllowedRoles) {
			continue
		}
		out = append(out, r)
	}
	return out
}
