package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/dashshell/internal/client/gate"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
	"github.com/dmitrijs2005/dashshell/internal/client/views"
	"github.com/dmitrijs2005/dashshell/internal/common"
)

// sessionView is the public shape of the session. The token stays server-side.
type sessionView struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	IsAdmin       bool         `json:"isAdmin"`
	User          *models.User `json:"user,omitempty"`
	ExpiresAt     int64        `json:"expiresAt,omitempty"`
}

func newSessionView(st services.SessionState) sessionView {
	v := sessionView{
		Authenticated: st.IsAuthenticated(),
		Loading:       st.IsLoading,
		IsAdmin:       st.IsAdmin(),
		User:          st.User,
	}
	if !st.ExpiresAt.IsZero() {
		v.ExpiresAt = st.ExpiresAt.UnixMilli()
	}
	return v
}

type loginResponse struct {
	Session    sessionView `json:"session"`
	RedirectTo string      `json:"redirectTo"`
}

func (s *Server) page(route gate.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := views.Input{Route: route, Session: s.session.Snapshot(), Theme: s.theme.Current()}
		if route.Page == gate.PageDashboard {
			in.Feed = s.feed.Refresh(r.Context())
		}
		p := views.Build(in)
		if route.Page == gate.PageLogin {
			p.From = r.URL.Query().Get("from")
		}
		s.writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	route, _ := gate.Lookup(r.URL.Path)
	s.writeJSON(w, http.StatusNotFound, views.Build(views.Input{Route: route, Theme: s.theme.Current()}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var role models.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := models.ParseRole(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	if err := s.session.Login(ctx, role); err != nil {
		s.metrics.logins.WithLabelValues("failure").Inc()
		s.logger.Warn(ctx, "login failed", "role", string(role), "error", err)
		status := http.StatusUnauthorized
		if errors.Is(err, common.ErrUnknownRole) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return
	}
	s.metrics.logins.WithLabelValues("success").Inc()

	s.writeJSON(w, http.StatusOK, loginResponse{
		Session:    newSessionView(s.session.Snapshot()),
		RedirectTo: continueTo(r.URL.Query().Get("from")),
	})
}

// continueTo keeps local paths only; anything else goes to the dashboard.
func continueTo(from string) string {
	switch {
	case !strings.HasPrefix(from, "/"),
		strings.HasPrefix(from, "//"),
		strings.HasPrefix(from, `/\`),
		strings.HasPrefix(from, gate.LoginPath):
		return gate.DashboardPath
	}
	return from
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out", "redirectTo": gate.LoginPath})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newSessionView(s.session.Snapshot()))
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.writeTheme(w, r, nil)
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	_, err := s.theme.Toggle(r.Context())
	s.writeTheme(w, r, err)
}

func (s *Server) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParseTheme(chi.URLParam(r, "theme"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeTheme(w, r, s.theme.Set(r.Context(), t))
}

// writeTheme reports the current theme; a persistence error still carries
// the in-memory value, which has already changed.
func (s *Server) writeTheme(w http.ResponseWriter, r *http.Request, err error) {
	body := map[string]string{"theme": string(s.theme.Current())}
	if err != nil {
		s.logger.Error(r.Context(), "failed to persist theme", "error", err)
		body["error"] = err.Error()
		s.writeJSON(w, http.StatusInternalServerError, body)
		return
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
