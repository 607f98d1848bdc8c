package tui

// alertOverlay is the accident banner. It is either hidden, or visible and
// blinking.
type alertOverlay struct {
	text     string
	hidden   bool
	blinking bool
	blinkOn  bool // current phase of the blink animation
	gen      int  // current blink loop
}

func newAlertOverlay() alertOverlay {
	return alertOverlay{hidden: true}
}

func (a *alertOverlay) show(text string) {
	a.text = text
	a.hidden = false
	a.blinking = true
	a.blinkOn = true
}

func (a *alertOverlay) hide() {
	a.hidden = true
	a.blinking = false
	a.blinkOn = false
}

func (a alertOverlay) visible() bool {
	return !a.hidden
}
