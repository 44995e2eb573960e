package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/logging"
)

// SchemeDetector reports the platform's color-scheme preference.
type SchemeDetector interface {
	PrefersDark() bool
}

// Display applies a theme as the single active display mode.
type Display interface {
	Apply(theme models.Theme)
}

// ThemeService owns the light/dark preference.
//
// Every change is applied to the display first and then persisted. A
// persistence error is returned, but the new theme stays in effect.
type ThemeService interface {
	Initialize(ctx context.Context) error
	Current() models.Theme
	Toggle(ctx context.Context) (models.Theme, error)
	Set(ctx context.Context, theme models.Theme) error
}

type themeService struct {
	repo     metadata.Repository
	detector SchemeDetector
	display  Display
	logger   logging.Logger

	mu    sync.RWMutex
	theme models.Theme
}

// NewThemeService starts out light. detector and display may be nil.
func NewThemeService(repo metadata.Repository, detector SchemeDetector, display Display, logger logging.Logger) ThemeService {
	return &themeService{
		repo:     repo,
		detector: detector,
		display:  display,
		logger:   logger.With("component", "theme"),
		theme:    models.ThemeLight,
	}
}

func (t *themeService) Current() models.Theme {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.theme
}

// Initialize picks the stored theme, else the OS preference, else light.
// A theme that did not come from the store is persisted.
func (t *themeService) Initialize(ctx context.Context) error {
	stored, err := t.loadStored(ctx)
	if err == nil {
		t.adopt(stored)
		return nil
	}
	if !errors.Is(err, common.ErrUnknownTheme) {
		t.logger.Warn(ctx, "failed to read theme", "error", err)
	}

	theme := models.ThemeLight
	if t.detector != nil && t.detector.PrefersDark() {
		theme = models.ThemeDark
	}
	return t.change(ctx, theme)
}

func (t *themeService) Toggle(ctx context.Context) (models.Theme, error) {
	t.mu.Lock()
	next := t.theme.Opposite()
	t.theme = next
	t.mu.Unlock()

	t.apply(next)
	return next, t.persist(ctx, next)
}

func (t *themeService) Set(ctx context.Context, theme models.Theme) error {
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return err
	}
	return t.change(ctx, theme)
}

func (t *themeService) loadStored(ctx context.Context) (models.Theme, error) {
	raw, err := t.repo.Get(ctx, common.ThemeStorageKey)
	if err != nil {
		return "", err
	}
	return models.ParseTheme(string(raw))
}

func (t *themeService) adopt(theme models.Theme) {
	t.mu.Lock()
	t.theme = theme
	t.mu.Unlock()
	t.apply(theme)
}

func (t *themeService) apply(theme models.Theme) {
	if t.display != nil {
		t.display.Apply(theme)
	}
}

func (t *themeService) change(ctx context.Context, theme models.Theme) error {
	t.adopt(theme)
	return t.persist(ctx, theme)
}

func (t *themeService) persist(ctx context.Context, theme models.Theme) error {
	if err := t.repo.Set(ctx, common.ThemeStorageKey, []byte(theme)); err != nil {
		t.logger.Error(ctx, "failed to persist theme", "theme", theme, "error", err)
		return fmt.Errorf("persist theme: %w", err)
	}
	t.logger.Debug(ctx, "theme changed", "theme", theme)
	return nil
}
