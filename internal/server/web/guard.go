package web

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/dashshell/internal/client/gate"
)

// guard asks the gate about route and maps the decision onto HTTP:
// loading is 503, the redirects are 303 See Other, render passes through.
func (s *Server) guard(route gate.Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := s.session.Snapshot()
			out := gate.Decide(gate.Input{
				IsLoading:       st.IsLoading,
				IsAuthenticated: st.IsAuthenticated(),
				User:            st.User,
				AllowedRoles:    route.AllowedRoles,
				Location:        r.URL.RequestURI(),
			})
			s.metrics.gateDecisions.WithLabelValues(out.Decision.String()).Inc()

			switch out.Decision {
			case gate.ShowLoading:
				w.Header().Set("Retry-After", "1")
				s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			case gate.RedirectToLogin:
				target := out.RedirectTo + "?" + url.Values{"from": {out.From}}.Encode()
				http.Redirect(w, r, target, http.StatusSeeOther)
			case gate.RedirectToDenied:
				http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
