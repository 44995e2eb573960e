// Package appearance adapts the theme service to a terminal: it reads the
// platform color-scheme hint and applies the active display mode.
package appearance

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"golang.org/x/term"
)

// Color-scheme settings accepted by SchemeDetector.
const (
	SchemeAuto  = "auto"
	SchemeDark  = "dark"
	SchemeLight = "light"
)

// SchemeDetector answers "does the platform prefer dark?".
//
// An explicit scheme wins. With SchemeAuto the COLORFGBG variable set by
// many terminals is consulted: a background color index of 0-6 or 8 is dark.
type SchemeDetector struct {
	Scheme string
	Getenv func(string) string
}

func NewSchemeDetector(scheme string) *SchemeDetector {
	return &SchemeDetector{Scheme: scheme, Getenv: os.Getenv}
}

func (d *SchemeDetector) PrefersDark() bool {
	switch strings.ToLower(strings.TrimSpace(d.Scheme)) {
	case SchemeDark:
		return true
	case SchemeLight:
		return false
	}

	if d.Getenv == nil {
		return false
	}
	v := d.Getenv("COLORFGBG")
	if v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}

// TerminalDisplay holds the single active display mode. When the writer is
// a terminal, applying a mode also sets the terminal background.
type TerminalDisplay struct {
	w     io.Writer
	isTTY bool

	mu   sync.RWMutex
	mode models.Theme
}

func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	d := &TerminalDisplay{w: w}
	if f, ok := w.(*os.File); ok {
		d.isTTY = term.IsTerminal(int(f.Fd()))
	}
	return d
}

var backgrounds = map[models.Theme]string{
	models.ThemeLight: "#ffffff",
	models.ThemeDark:  "#1e1e1e",
}

func (d *TerminalDisplay) Apply(theme models.Theme) {
	d.mu.Lock()
	d.mode = theme
	d.mu.Unlock()

	if d.isTTY {
		// OSC 11: set default background color.
		fmt.Fprintf(d.w, "\x1b]11;%s\x07", backgrounds[theme])
	}
}

// Mode returns the active mode; empty before the first Apply.
func (d *TerminalDisplay) Mode() models.Theme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mode
}
