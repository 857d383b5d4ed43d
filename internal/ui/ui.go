package ui

import (
	"context"
	_ "embed"
	"log/slog"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"github.com/jonboulle/clockwork"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/engine"
)

//go:embed Icon.svg
var appIconData []byte

// Verifier is the license gate consulted before the stopwatch is built.
type Verifier interface {
	Verify(ctx context.Context, key string) error
}

// Dispatcher queues a mutation for the goroutine that owns the stopwatch.
// engine.Runner is the production implementation.
type Dispatcher interface {
	Do(ctx context.Context, fn func(*engine.Stopwatch)) bool
}

// ShowtimeApp encapsulates the UI state, preferences, and the stopwatch loop.
type ShowtimeApp struct {
	App            fyne.App
	Window         fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context

	Gate       Verifier
	LicenseKey string

	Clock           clockwork.Clock // Injected clock, a fake one in tests
	RefreshInterval time.Duration
	Rand            *rand.Rand
	// Sequence is the routine used when no preference has been saved yet.
	Sequence string

	Dispatcher Dispatcher

	SupportedLanguages []string

	view *stopwatchView
}

// NewShowtimeApp constructs the application and wires dependencies.
func NewShowtimeApp(a fyne.App, ctx context.Context, gate Verifier, licenseKey string) *ShowtimeApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &ShowtimeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Gate:               gate,
		LicenseKey:         licenseKey,
		Clock:              engine.NewRealClock(),
		RefreshInterval:    config.DefaultRefreshInterval,
		Sequence:           config.SequenceStaged,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run shows the main window, verifies the license in the background and
// enters the Fyne event loop.
func (app *ShowtimeApp) Run() {
	app.SetupI18n()

	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	app.showVerifying()
	app.Window.Show()

	go func() {
		err := app.verify()
		fyne.Do(func() {
			if err != nil {
				app.ShowDenied(err)
				return
			}
			app.StartStopwatch()
		})
	}()

	app.App.Run()
}

// verify runs the license gate. A nil gate grants access.
func (app *ShowtimeApp) verify() error {
	if app.Gate == nil {
		return nil
	}
	return app.Gate.Verify(app.Ctx, app.LicenseKey)
}

// sequence resolves the illusion routine from preferences.
func (app *ShowtimeApp) sequence() string {
	return app.Preferences.StringWithFallback(config.PrefSequence, app.Sequence)
}

// StartStopwatch builds the core, shows the stopwatch screen and starts the
// loop that owns it. It must run on the UI goroutine.
func (app *ShowtimeApp) StartStopwatch() {
	app.showStopwatch()

	sw := engine.New(app.Clock, engine.Options{
		Sequence: app.sequence(),
		Rand:     app.Rand,
		Sink: engine.RenderFunc(func(v engine.View) {
			fyne.Do(func() { app.view.apply(v) })
		}),
	})
	runner := engine.NewRunner(sw, app.Clock, app.RefreshInterval)
	app.Dispatcher = runner

	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySequence, sw.Sequence(),
	)
	go runner.Run(app.Ctx)
}

// do forwards fn to the stopwatch owner. Before the core exists it is a no-op.
func (app *ShowtimeApp) do(fn func(*engine.Stopwatch)) {
	if app.Dispatcher == nil {
		return
	}
	app.Dispatcher.Do(app.Ctx, fn)
}
