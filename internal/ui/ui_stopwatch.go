package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/engine"
)

// labels caches the localized captions so that frames do not hit the localizer.
type labels struct {
	start, stop, lap, reset string
	stopwatch, worldClock   string
	worldClockSync, alarms  string
	keypadTitle, clear      string
	cancel                  string
}

// stopwatchView holds the widgets of the main screen. It only paints
// engine.View values and forwards taps; it never reads state back.
type stopwatchView struct {
	app *ShowtimeApp
	txt labels

	main      *canvas.Text
	dot       *widget.Button
	settings  *widget.Button
	startStop *widget.Button
	lapReset  *widget.Button

	tabStopwatch  *widget.Button
	tabWorldClock *widget.Button
	tabAlarms     *widget.Button

	laps *widget.List
	rows []engine.LapRow

	keypad      *widget.PopUp
	keypadEntry *widget.Label
	keypadTitle *widget.Label
	digitEntry  *DigitEntry

	current engine.View
	content fyne.CanvasObject
}

// showStopwatch builds the stopwatch screen and sets it as window content.
func (app *ShowtimeApp) showStopwatch() {
	v := &stopwatchView{app: app}
	v.relabel()

	v.main = canvas.NewText(config.ZeroDisplay, theme.Color(theme.ColorNameForeground))
	v.main.TextSize = config.MainDisplayTextSize
	v.main.TextStyle = fyne.TextStyle{Monospace: true}
	v.main.Alignment = fyne.TextAlignCenter

	v.dot = widget.NewButton(config.PeekIndicator, func() {
		app.do((*engine.Stopwatch).ShowRemembered)
	})
	v.dot.Importance = widget.LowImportance

	v.settings = widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)
	v.settings.Importance = widget.LowImportance

	v.startStop = widget.NewButton(v.txt.start, func() {
		app.do((*engine.Stopwatch).StartStop)
	})
	v.lapReset = widget.NewButton(v.txt.lap, func() {
		app.do((*engine.Stopwatch).LapReset)
	})
	v.lapReset.Disable()

	v.tabStopwatch = widget.NewButton(v.txt.stopwatch, nil)
	v.tabStopwatch.Importance = widget.HighImportance
	v.tabWorldClock = widget.NewButton(v.txt.worldClock, func() {
		app.do((*engine.Stopwatch).OpenPrediction)
	})
	v.tabAlarms = widget.NewButton(v.txt.alarms, func() {
		app.do((*engine.Stopwatch).ToggleMindReading)
	})

	v.laps = widget.NewList(
		func() int { return len(v.rows) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("")
			value := widget.NewLabel("")
			value.Alignment = fyne.TextAlignTrailing
			value.TextStyle = fyne.TextStyle{Monospace: true}
			return container.NewGridWithColumns(config.LayoutColumnsDouble, name, value)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(v.rows) {
				return
			}
			row := v.rows[id]
			cells := obj.(*fyne.Container).Objects
			cells[0].(*widget.Label).SetText(app.lapLabel(row.Number))
			paintLap(cells[1].(*widget.Label), row)
		},
	)

	v.buildKeypad()

	tabs := container.NewGridWithColumns(config.LayoutColumnsTabs, v.tabStopwatch, v.tabWorldClock, v.tabAlarms)
	topBar := container.NewBorder(nil, nil, v.dot, v.settings)
	controls := container.NewGridWithColumns(config.LayoutColumnsDouble, v.lapReset, v.startStop)

	v.content = container.NewBorder(
		container.NewVBox(tabs, topBar, v.main),
		container.NewPadded(controls),
		nil, nil,
		v.laps,
	)

	app.view = v
	app.Window.SetContent(v.content)
}

// buildKeypad assembles the modal prediction keypad.
func (v *stopwatchView) buildKeypad() {
	app := v.app

	v.keypadTitle = widget.NewLabelWithStyle(v.txt.keypadTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.keypadEntry = widget.NewLabelWithStyle(config.PlaceholderEntry, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})

	press := func(d int) {
		app.do(func(sw *engine.Stopwatch) { sw.PressDigit(d) })
	}
	v.digitEntry = NewDigitEntry(press)

	grid := container.NewGridWithColumns(config.KeypadColumns)
	for d := 1; d <= 9; d++ {
		grid.Add(widget.NewButton(strconv.Itoa(d), func() { press(d) }))
	}
	grid.Add(widget.NewButton(v.txt.clear, func() {
		app.do((*engine.Stopwatch).ClearPrediction)
	}))
	grid.Add(widget.NewButton("0", func() { press(0) }))
	grid.Add(widget.NewButtonWithIcon(v.txt.cancel, theme.CancelIcon(), func() {
		app.do((*engine.Stopwatch).DismissPrediction)
	}))

	content := container.NewVBox(v.keypadTitle, v.keypadEntry, v.digitEntry, grid)
	v.keypad = widget.NewModalPopUp(content, app.Window.Canvas())
}

// relabel reloads every caption from the localizer.
func (v *stopwatchView) relabel() {
	app := v.app
	v.txt = labels{
		start:          app.GetMsg(config.TKeyBtnStart),
		stop:           app.GetMsg(config.TKeyBtnStop),
		lap:            app.GetMsg(config.TKeyBtnLap),
		reset:          app.GetMsg(config.TKeyBtnReset),
		stopwatch:      app.GetMsg(config.TKeyTabStopwatch),
		worldClock:     app.GetMsg(config.TKeyTabWorldClock),
		worldClockSync: app.GetMsg(config.TKeyTabWorldClockSync),
		alarms:         app.GetMsg(config.TKeyTabAlarms),
		keypadTitle:    app.GetMsg(config.TKeyKeypadTitle),
		clear:          app.GetMsg(config.TKeyBtnClear),
		cancel:         app.GetMsg(config.TKeyBtnCancel),
	}
}

// refreshLanguage applies a new localizer to the already built screen.
func (v *stopwatchView) refreshLanguage() {
	v.relabel()
	v.tabStopwatch.SetText(v.txt.stopwatch)
	v.tabAlarms.SetText(v.txt.alarms)
	v.keypadTitle.SetText(v.txt.keypadTitle)
	v.apply(v.current)
	v.laps.Refresh()
}

// paintLap writes the lap time and colours the fastest and slowest laps.
func paintLap(l *widget.Label, row engine.LapRow) {
	switch row.Mark {
	case engine.MarkFastest:
		l.Importance = widget.SuccessImportance
		l.SetText(row.Time + config.MarkFastestSuffix)
	case engine.MarkSlowest:
		l.Importance = widget.DangerImportance
		l.SetText(row.Time + config.MarkSlowestSuffix)
	default:
		l.Importance = widget.MediumImportance
		l.SetText(row.Time)
	}
}

// apply paints v. It must run on the UI goroutine.
func (v *stopwatchView) apply(view engine.View) {
	v.current = view

	if view.Main == "" {
		view.Main = config.ZeroDisplay
	}
	if v.main.Text != view.Main {
		v.main.Text = view.Main
		v.main.Refresh()
	}

	if view.Running {
		v.startStop.SetText(v.txt.stop)
		v.startStop.Importance = widget.DangerImportance
		v.lapReset.SetText(v.txt.lap)
	} else {
		v.startStop.SetText(v.txt.start)
		v.startStop.Importance = widget.SuccessImportance
		v.lapReset.SetText(v.txt.reset)
	}
	v.startStop.Refresh()
	if view.CanLap {
		v.lapReset.Enable()
	} else {
		v.lapReset.Disable()
	}

	if view.WorldClockStage {
		v.tabWorldClock.SetText(v.txt.worldClockSync)
	} else {
		v.tabWorldClock.SetText(v.txt.worldClock)
	}

	alarms := widget.MediumImportance
	if view.MindReading {
		alarms = widget.HighImportance
	}
	if v.tabAlarms.Importance != alarms {
		v.tabAlarms.Importance = alarms
		v.tabAlarms.Refresh()
	}

	dot := widget.LowImportance
	if view.PsychicArmed {
		dot = widget.SuccessImportance
	}
	if v.dot.Importance != dot {
		v.dot.Importance = dot
		v.dot.Refresh()
	}

	v.rows = view.Laps
	v.laps.Refresh()

	v.applyOverlay(view.Overlay)
}

func (v *stopwatchView) applyOverlay(o engine.Overlay) {
	if !o.Open {
		if v.keypad.Visible() {
			v.keypad.Hide()
		}
		return
	}
	v.keypadEntry.SetText(o.Entry)
	if !v.keypad.Visible() {
		v.keypad.Show()
		v.app.Window.Canvas().Focus(v.digitEntry)
	}
}
