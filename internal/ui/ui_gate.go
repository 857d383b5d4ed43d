package ui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/license"
)

// showVerifying displays the placeholder shown while the gate runs.
func (app *ShowtimeApp) showVerifying() {
	bar := widget.NewProgressBarInfinite()
	label := widget.NewLabel(app.GetMsg(config.TKeyVerifying))
	label.Alignment = fyne.TextAlignCenter
	app.Window.SetContent(container.NewCenter(container.NewVBox(label, bar)))
}

// ShowDenied replaces the window content with the blocking denial screen.
// The stopwatch is never built once this screen is shown.
func (app *ShowtimeApp) ShowDenied(err error) {
	slog.Warn(config.MsgLicenseDenied,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err,
	)

	title := widget.NewLabelWithStyle(
		app.msgOr(config.TKeyDeniedTitle, config.FallbackDeniedTitle),
		fyne.TextAlignCenter,
		fyne.TextStyle{Bold: true},
	)
	title.Importance = widget.DangerImportance

	detail := widget.NewLabel(app.deniedMessage(err))
	detail.Alignment = fyne.TextAlignCenter
	detail.Wrapping = fyne.TextWrapWord

	icon := widget.NewIcon(theme.ErrorIcon())
	app.Window.SetContent(container.NewCenter(container.NewVBox(icon, title, detail)))
}

// deniedMessage tells a rejected key apart from an unreachable store.
func (app *ShowtimeApp) deniedMessage(err error) string {
	if license.Denied(err) || !errors.Is(err, license.ErrUnavailable) {
		return app.msgOr(config.TKeyDeniedInvalid, config.FallbackDeniedInvalid)
	}
	return app.msgOr(config.TKeyDeniedUnreachable, config.FallbackUnreachable)
}
