package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DigitEntry is an Entry that forwards each typed digit to OnDigit and keeps
// no text of its own. It embeds widget.Entry to inherit focus handling.
type DigitEntry struct {
	widget.Entry

	OnDigit func(d int)
}

// NewDigitEntry creates a new instance of DigitEntry.
func NewDigitEntry(onDigit func(int)) *DigitEntry {
	entry := &DigitEntry{OnDigit: onDigit}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events.
// Only digits (0-9) reach OnDigit; everything else is dropped.
func (e *DigitEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.OnDigit != nil {
		e.OnDigit(int(r - '0'))
	}
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *DigitEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
