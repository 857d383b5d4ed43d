package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	seqSelect  *widget.Select
}

// ShowSettingsWindow displays the configuration dialog.
func (app *ShowtimeApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// --- 2. Illusion sequence ---
	// Translated labels are mapped back to values in saveSettings.
	sw.seqSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeySeqStaged),
		app.GetMsg(config.TKeySeqSingleShot),
	}, nil)
	if app.sequence() == config.SequenceSingleShot {
		sw.seqSelect.SetSelected(app.GetMsg(config.TKeySeqSingleShot))
	} else {
		sw.seqSelect.SetSelected(app.GetMsg(config.TKeySeqStaged))
	}

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSequence), sw.seqSelect),
	)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveSettings(sw, w)
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })
	w.Show()
}

// saveSettings persists the preferences and pushes them to the running screen.
func (app *ShowtimeApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	seq := config.SequenceStaged
	if sw.seqSelect.Selected == app.GetMsg(config.TKeySeqSingleShot) {
		seq = config.SequenceSingleShot
	}

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	app.Preferences.SetString(config.PrefSequence, seq)

	app.UpdateLocalizer()
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
	if app.view != nil {
		app.view.refreshLanguage()
	}
	app.do(func(s *engine.Stopwatch) { s.SetSequence(seq) })

	w.Close()
}
