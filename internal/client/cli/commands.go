package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dashshell/internal/client/gate"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
	"github.com/dmitrijs2005/dashshell/internal/client/views"
)

// Open navigates to path, applying the gate to protected routes.
func (a *App) Open(ctx context.Context, path string) error {
	route, ok := gate.Lookup(path)
	if !ok {
		printlnFn("Not found:", path)
		return nil
	}

	if !route.Protected {
		a.show(ctx, route)
		return nil
	}

	st := a.session.Snapshot()
	out := gate.Decide(gate.Input{
		IsLoading:       st.IsLoading,
		IsAuthenticated: st.IsAuthenticated(),
		User:            st.User,
		AllowedRoles:    route.AllowedRoles,
		Location:        route.Path,
	})

	switch out.Decision {
	case gate.ShowLoading:
		printlnFn("Loading...")
	case gate.RedirectToLogin:
		a.pending = out.From
		printlnFn(fmt.Sprintf("Sign in required for %s", out.From))
		return a.openPublic(ctx, out.RedirectTo)
	case gate.RedirectToDenied:
		return a.openPublic(ctx, out.RedirectTo)
	case gate.RenderChildren:
		a.show(ctx, route)
	}
	return nil
}

func (a *App) openPublic(ctx context.Context, path string) error {
	route, _ := gate.Lookup(path)
	a.show(ctx, route)
	return nil
}

func (a *App) show(ctx context.Context, route gate.Route) {
	a.location = route.Path

	in := views.Input{Route: route, Session: a.session.Snapshot(), Theme: a.theme.Current()}
	if route.Page == gate.PageDashboard {
		in.Feed = a.feed.Refresh(ctx)
	}
	render(views.Build(in))
}

// Login signs in with role (empty means the provider default) and opens
// the route a redirect interrupted, or the dashboard.
func (a *App) Login(ctx context.Context, role string) error {
	var r models.Role
	if role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			printlnFn("Usage: login [admin|user]")
			return err
		}
		r = parsed
	}

	printlnFn("Signing in...")
	if err := a.session.Login(ctx, r); err != nil {
		a.logger.Error(ctx, "login failed", "error", err)
		printlnFn("Login failed:", err.Error())
		return err
	}

	st := a.session.Snapshot()
	printlnFn(fmt.Sprintf("Signed in as %s (%s)", st.User.Name, st.User.Role))

	target := gate.DashboardPath
	if a.pending != "" {
		target = a.pending
		a.pending = ""
	}
	return a.Open(ctx, target)
}

func (a *App) Logout(ctx context.Context) error {
	printlnFn("Signing out...")
	a.session.Logout(ctx)
	a.pending = ""
	printlnFn("Signed out")
	return a.openPublic(ctx, gate.LoginPath)
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.IsAuthenticated() {
		printlnFn("Not signed in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s session expires %s",
		st.User.Name, st.User.Email, st.User.Role, st.ExpiresAt.UTC().Format("2006-01-02 15:04 MST")))
	return nil
}

// Theme prints the current theme, toggles it, or sets it explicitly.
func (a *App) Theme(ctx context.Context, arg string) error {
	var err error
	switch arg {
	case "":
	case "toggle":
		_, err = a.theme.Toggle(ctx)
	default:
		var t models.Theme
		if t, err = models.ParseTheme(arg); err != nil {
			printlnFn("Usage: theme [toggle|light|dark]")
			return err
		}
		err = a.theme.Set(ctx, t)
	}
	if err != nil {
		a.logger.Warn(ctx, "failed to persist theme", "error", err)
	}
	printlnFn("Theme:", string(a.theme.Current()))
	return err
}

// Pages lists the routes the current user may open.
func (a *App) Pages(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.IsAuthenticated() {
		printlnFn("  " + gate.LoginPath)
		return nil
	}
	for _, r := range gate.Visible(st.User) {
		marker := "  "
		if r.Path == a.location {
			marker = "* "
		}
		printlnFn(fmt.Sprintf("%s%-12s %s", marker, r.Path, r.Title))
	}
	return nil
}

// Store lists the keys held in the durable store.
func (a *App) Store(ctx context.Context) error {
	keys, err := a.store.Keys(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to list stored keys", "error", err)
		printlnFn("Store unavailable:", err.Error())
		return err
	}
	if len(keys) == 0 {
		printlnFn("Store is empty")
		return nil
	}
	for _, k := range keys {
		printlnFn("  " + k)
	}
	return nil
}

// Reset signs out, wipes the durable store and falls back to the default
// theme.
func (a *App) Reset(ctx context.Context) error {
	a.session.Logout(ctx)
	a.pending = ""

	n, err := a.store.Clear(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to clear store", "error", err)
		printlnFn("Reset failed:", err.Error())
		return err
	}
	if err := a.theme.Initialize(ctx); err != nil {
		a.logger.Warn(ctx, "failed to persist theme", "error", err)
	}

	printlnFn(fmt.Sprintf("Cleared %d entries", n))
	return a.openPublic(ctx, gate.LoginPath)
}

func feedLines(f *services.FeedState) []string {
	switch f.Status {
	case services.FeedLoading:
		return []string{"  loading..."}
	case services.FeedError:
		return []string{"  " + f.Error}
	}
	lines := make([]string, 0, len(f.Posts))
	for _, p := range f.Posts {
		lines = append(lines, fmt.Sprintf("  #%d %s", p.ID, p.Title))
	}
	if len(lines) == 0 {
		lines = append(lines, "  no posts")
	}
	return lines
}
