package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	focusDur      *widget.Entry
	shortDur      *widget.Entry
	longDur       *widget.Entry
	longEvery     *widget.Entry
	autoResume    *widget.Check
	resumeDelay   *widget.Entry
	notifications *widget.Check
	sound         *widget.Check
	volume        *widget.Slider
	launchAtLogin *widget.Check
	darkMode      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FocusFlow Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		focusDur:      widget.NewEntry(),
		shortDur:      widget.NewEntry(),
		longDur:       widget.NewEntry(),
		longEvery:     widget.NewEntry(),
		autoResume:    widget.NewCheck("Start the next phase automatically", nil),
		resumeDelay:   widget.NewEntry(),
		notifications: widget.NewCheck("Allow desktop notifications", nil),
		sound:         widget.NewCheck("Play sounds", nil),
		volume:        widget.NewSlider(0, 1),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
		darkMode:      widget.NewCheck("Dark theme", nil),
	}
	prefs.volume.Step = 0.05
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.focusDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break after"), prefs.longEvery, widget.NewLabel("sessions")),
		prefs.autoResume,
		container.NewHBox(widget.NewLabel("Auto-start delay"), prefs.resumeDelay, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.sound,
		widget.NewLabel("Volume"),
		prefs.volume,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.launchAtLogin,
		prefs.darkMode,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focusDur.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	prefs.shortDur.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	prefs.longDur.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	prefs.longEvery.SetText(fmt.Sprintf("%d", settings.LongBreakEvery))
	prefs.autoResume.SetChecked(settings.AutoResume)
	prefs.resumeDelay.SetText(fmt.Sprintf("%d", int(settings.AutoResumeDelay.Seconds())))
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.Value = settings.Volume
	prefs.volume.Refresh()
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.darkMode.SetChecked(settings.DarkMode)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focusDur.Text); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.shortDur.Text); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.longDur.Text); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if sessions, ok := parsePositiveInt(prefs.longEvery.Text); ok {
		settings.LongBreakEvery = sessions
	}
	if seconds, ok := parsePositiveInt(prefs.resumeDelay.Text); ok {
		settings.AutoResumeDelay = time.Duration(seconds) * time.Second
	}

	settings.AutoResume = prefs.autoResume.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.SoundEnabled = prefs.sound.Checked
	settings.Volume = prefs.volume.Value
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	settings.DarkMode = prefs.darkMode.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
