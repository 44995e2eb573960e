// Package views builds the page view models both routers present.
// Content other than the session user and the feed is static.
package views

import (
	"github.com/dmitrijs2005/dashshell/internal/client/gate"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Stat is a headline number with its month-over-month change.
type Stat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

type Country struct {
	Name     string `json:"name"`
	Visitors string `json:"visitors"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Toggle struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

type SettingSection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Settings    []Toggle `json:"settings"`
}

// MenuItem is an entry of the navigation sidebar.
type MenuItem struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Current bool   `json:"current,omitempty"`
}

// Page is a rendered view. Only the fields of the page's kind are set.
type Page struct {
	Page     gate.Page    `json:"page"`
	Path     string       `json:"path"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	User     *models.User `json:"user,omitempty"`
	Theme    models.Theme `json:"theme,omitempty"`
	Menu     []MenuItem   `json:"menu,omitempty"`

	Stats        []Stat              `json:"stats,omitempty"`
	Feed         *services.FeedState `json:"feed,omitempty"`
	QuickActions []string            `json:"quickActions,omitempty"`

	Fields []Field `json:"fields,omitempty"`

	Metrics   []Stat    `json:"metrics,omitempty"`
	Countries []Country `json:"countries,omitempty"`

	Sections []SettingSection `json:"sections,omitempty"`

	Roles []RoleChoice `json:"roles,omitempty"`
	// From is where the sign-in page continues after login.
	From string `json:"from,omitempty"`
}

// RoleChoice is a login option.
type RoleChoice struct {
	Role        models.Role `json:"role"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

var dashboardStats = []Stat{
	{Title: "Total Revenue", Value: "$45,231.89", Change: "+20.1%", Trend: TrendUp},
	{Title: "Active Users", Value: "2,350", Change: "+180.1%", Trend: TrendUp},
	{Title: "Sales", Value: "+12,234", Change: "+19%", Trend: TrendUp},
	{Title: "Active Sessions", Value: "573", Change: "-4%", Trend: TrendDown},
}

var quickActions = []string{"Create Report", "View Analytics", "Export Data", "Send Message"}

var analyticsMetrics = []Stat{
	{Title: "Page Views", Value: "128,432", Change: "+12.5%", Trend: TrendUp},
	{Title: "Unique Visitors", Value: "34,521", Change: "+8.2%", Trend: TrendUp},
	{Title: "Conversion Rate", Value: "3.24%", Change: "+2.1%", Trend: TrendUp},
	{Title: "Avg. Session", Value: "4m 32s", Change: "+18.7%", Trend: TrendUp},
}

var countries = []Country{
	{Name: "United States", Visitors: "45.2K"},
	{Name: "United Kingdom", Visitors: "12.8K"},
	{Name: "Germany", Visitors: "8.4K"},
	{Name: "Canada", Visitors: "6.1K"},
}

var settingSections = []SettingSection{
	{
		ID: "notifications", Title: "Notifications", Description: "Manage your notification preferences",
		Settings: []Toggle{
			{Label: "Email notifications", Description: "Receive updates via email", Enabled: true},
			{Label: "Push notifications", Description: "Get notified in your browser"},
			{Label: "Weekly digest", Description: "Summary of your activity", Enabled: true},
		},
	},
	{
		ID: "security", Title: "Security", Description: "Protect your account",
		Settings: []Toggle{
			{Label: "Two-factor authentication", Description: "Add an extra layer of security"},
			{Label: "Session alerts", Description: "Get notified of new logins", Enabled: true},
		},
	},
}

var roleChoices = []RoleChoice{
	{Role: models.RoleAdmin, Title: "Admin Access", Description: "Full access to all 4 sections"},
	{Role: models.RoleUser, Title: "User Access", Description: "Access to 2 sections only"},
}

// Input is what a page may show besides its static content.
type Input struct {
	Route   gate.Route
	Session services.SessionState
	Theme   models.Theme
	// Feed is only read for the dashboard.
	Feed services.FeedState
}

// Build assembles the view for in.Route. It does not consult the gate;
// callers render only after a RenderChildren decision or for public routes.
func Build(in Input) Page {
	p := Page{
		Page:  in.Route.Page,
		Path:  in.Route.Path,
		Title: in.Route.Title,
		Theme: in.Theme,
		User:  in.Session.User,
	}
	if in.Session.IsAuthenticated() {
		p.Menu = menu(in.Session.User, in.Route.Path)
	}

	switch in.Route.Page {
	case gate.PageLogin:
		p.Subtitle = "Select a role to continue to the dashboard"
		p.Roles = roleChoices
	case gate.PageUnauthorized:
		p.Subtitle = "You don't have permission to access this page. This section requires admin privileges."
	case gate.PageDashboard:
		if in.Session.User != nil {
			p.Subtitle = "Welcome back, " + in.Session.User.Name + "!"
		}
		p.Stats = dashboardStats
		feed := in.Feed
		p.Feed = &feed
		p.QuickActions = quickActions
	case gate.PageProfile:
		p.Subtitle = "Manage your personal information and preferences."
		p.Fields = profileFields(in.Session.User)
	case gate.PageAnalytics:
		p.Subtitle = "Detailed insights and performance metrics."
		p.Metrics = analyticsMetrics
		p.Countries = countries
	case gate.PageSettings:
		p.Subtitle = "Manage your account settings and preferences."
		p.Sections = append([]SettingSection{appearance(in.Theme)}, settingSections...)
	case gate.PageNotFound:
		p.Subtitle = "The page you requested does not exist."
	}
	return p
}

func menu(u *models.User, current string) []MenuItem {
	routes := gate.Visible(u)
	items := make([]MenuItem, 0, len(routes))
	for _, r := range routes {
		items = append(items, MenuItem{Path: r.Path, Title: r.Title, Current: r.Path == current})
	}
	return items
}

func appearance(theme models.Theme) SettingSection {
	return SettingSection{
		ID: "appearance", Title: "Appearance", Description: "Customize how the app looks",
		Settings: []Toggle{
			{Label: "Dark Mode", Description: "Toggle between light and dark themes", Enabled: theme == models.ThemeDark},
		},
	}
}

func profileFields(u *models.User) []Field {
	if u == nil {
		return nil
	}
	return []Field{
		{Label: "Full Name", Value: u.Name},
		{Label: "Role", Value: string(u.Role)},
		{Label: "Email", Value: u.Email},
		{Label: "Phone", Value: "+91 96570-73921"},
		{Label: "Location", Value: "India GJ"},
		{Label: "Member Since", Value: "January 2026"},
	}
}
