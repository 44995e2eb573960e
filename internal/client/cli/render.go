package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dashshell/internal/client/views"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// render prints a page as plain text.
func render(p views.Page) {
	printlnFn(fmt.Sprintf("== %s [%s] ==", p.Title, p.Path))
	if p.Subtitle != "" {
		printlnFn(p.Subtitle)
	}

	if len(p.Menu) > 0 {
		items := make([]string, 0, len(p.Menu))
		for _, m := range p.Menu {
			if m.Current {
				items = append(items, "["+m.Path+"]")
			} else {
				items = append(items, m.Path)
			}
		}
		printlnFn("Menu:", strings.Join(items, " "))
	}

	for _, r := range p.Roles {
		printlnFn(fmt.Sprintf("  login %-5s  %s: %s", r.Role, r.Title, r.Description))
	}

	for _, s := range p.Stats {
		printlnFn(fmt.Sprintf("  %-16s %12s  %s from last month", s.Title, s.Value, s.Change))
	}
	if p.Feed != nil {
		printlnFn("Recent posts:")
		for _, l := range feedLines(p.Feed) {
			printlnFn(l)
		}
	}
	if len(p.QuickActions) > 0 {
		printlnFn("Quick actions:", strings.Join(p.QuickActions, ", "))
	}

	for _, f := range p.Fields {
		printlnFn(fmt.Sprintf("  %-13s %s", f.Label+":", f.Value))
	}

	for _, m := range p.Metrics {
		printlnFn(fmt.Sprintf("  %-16s %10s  %s", m.Title, m.Value, m.Change))
	}
	if len(p.Countries) > 0 {
		printlnFn("Visitors by country:")
		for _, c := range p.Countries {
			printlnFn(fmt.Sprintf("  %-15s %s", c.Name, c.Visitors))
		}
	}

	for _, s := range p.Sections {
		printlnFn(s.Title + " - " + s.Description)
		for _, t := range s.Settings {
			printlnFn(fmt.Sprintf("  [%-3s] %s", onOff(t.Enabled), t.Label))
		}
	}
}
