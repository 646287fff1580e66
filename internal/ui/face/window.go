// Package face renders the timer engine in the main fyne window.
package face

import (
	"context"
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"focusflow/internal/core/engine"
	"focusflow/internal/quotes"
	"focusflow/internal/ui/display"
)

const quoteTimeout = 10 * time.Second

// Controller is the part of the engine the window drives.
type Controller interface {
	Toggle()
	Reset()
	SwitchPhase(target engine.Phase)
	Snapshot() engine.Snapshot
	Subscribe(buffer int) <-chan engine.Event
}

// QuoteSource returns a quote and never fails.
type QuoteSource interface {
	Fetch(ctx context.Context) quotes.Quote
}

// Options configures the main window.
type Options struct {
	Quotes        QuoteSource
	Logger        *zap.Logger
	DarkMode      bool
	OnPreferences func()
	OnThemeChange func(dark bool)
}

// Window is the main timer window.
type Window struct {
	app        fyne.App
	window     fyne.Window
	controller Controller
	quotes     QuoteSource
	logger     *zap.Logger
	options    Options
	darkMode   bool

	phaseButtons map[engine.Phase]*widget.Button
	phaseLabel   *canvas.Text
	clockText    *canvas.Text
	sessionLabel *widget.Label
	toggle       *widget.Button
	reset        *widget.Button
	progress     *widget.ProgressBar
	quoteText    *widget.Label
	quoteAuthor  *widget.Label
	refresh      *widget.Button
	themeButton  *widget.Button
	statsCount   *canvas.Text
}

// New builds the main window and renders the current engine state.
func New(app fyne.App, controller Controller, options Options) *Window {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	face := &Window{
		app:          app,
		window:       app.NewWindow(display.AppName),
		controller:   controller,
		quotes:       options.Quotes,
		logger:       options.Logger.Named("face"),
		options:      options,
		phaseButtons: make(map[engine.Phase]*widget.Button, len(engine.Phases)),
	}

	selector := container.NewGridWithColumns(len(engine.Phases))
	for _, phase := range engine.Phases {
		target := phase
		button := widget.NewButton(display.PhaseLabel(phase), func() {
			face.controller.SwitchPhase(target)
			face.render(face.controller.Snapshot())
		})
		face.phaseButtons[phase] = button
		selector.Add(button)
	}

	face.phaseLabel = canvas.NewText("", phaseColor(engine.Focus))
	face.phaseLabel.Alignment = fyne.TextAlignCenter
	face.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	face.phaseLabel.TextSize = 16

	face.clockText = canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	face.clockText.Alignment = fyne.TextAlignCenter
	face.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	face.clockText.TextSize = 72

	face.sessionLabel = widget.NewLabel("")
	face.sessionLabel.Alignment = fyne.TextAlignCenter

	face.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		face.controller.Toggle()
		face.render(face.controller.Snapshot())
	})
	face.toggle.Importance = widget.HighImportance
	face.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		face.controller.Reset()
		face.render(face.controller.Snapshot())
	})

	face.progress = widget.NewProgressBar()
	face.progress.TextFormatter = func() string {
		return display.Percent(face.progress.Value)
	}

	face.quoteText = widget.NewLabel("")
	face.quoteText.Wrapping = fyne.TextWrapWord
	face.quoteText.TextStyle = fyne.TextStyle{Italic: true}
	face.quoteAuthor = widget.NewLabel("")
	face.quoteAuthor.Alignment = fyne.TextAlignTrailing
	face.refresh = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), face.RefreshQuote)
	face.setQuote(quotes.Initial())

	face.statsCount = canvas.NewText("0", theme.Color(theme.ColorNameForeground))
	face.statsCount.Alignment = fyne.TextAlignCenter
	face.statsCount.TextStyle = fyne.TextStyle{Bold: true}
	face.statsCount.TextSize = 32

	face.themeButton = widget.NewButton("", face.toggleTheme)
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if face.options.OnPreferences != nil {
			face.options.OnPreferences()
		}
	})

	header := container.NewBorder(nil, nil, nil, container.NewHBox(face.themeButton, settingsButton),
		widget.NewLabelWithStyle("Stay focused, stay productive", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	controls := container.NewHBox(layout.NewSpacer(), face.toggle, face.reset, layout.NewSpacer())
	timerCard := widget.NewCard("", "", container.NewVBox(
		selector,
		face.phaseLabel,
		face.clockText,
		face.sessionLabel,
		controls,
		face.progress,
	))
	quoteCard := widget.NewCard("", "", container.NewBorder(nil, nil, nil, face.refresh,
		container.NewVBox(face.quoteText, face.quoteAuthor)))
	statsCard := widget.NewCard("Today's Progress", "", container.NewVBox(
		face.statsCount,
		widget.NewLabelWithStyle("Pomodoro Sessions", fyne.TextAlignCenter, fyne.TextStyle{}),
	))

	face.window.SetContent(container.NewVBox(header, timerCard, quoteCard, statsCard))
	face.window.Resize(fyne.NewSize(520, 640))

	face.applyTheme(options.DarkMode)
	face.render(controller.Snapshot())
	return face
}

// Window exposes the underlying fyne window.
func (face *Window) Window() fyne.Window {
	return face.window
}

// Show brings the window forward.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// Listen renders engine events until the subscription closes or ctx ends.
func (face *Window) Listen(ctx context.Context) {
	events := face.controller.Subscribe(16)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			snapshot := event.Snapshot
			fyne.Do(func() {
				face.render(snapshot)
			})
		}
	}
}

// RefreshQuote fetches a new quote in the background.
func (face *Window) RefreshQuote() {
	if face.quotes == nil {
		face.setQuote(quotes.RandomFallback())
		return
	}
	face.refresh.Disable()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
		defer cancel()
		quote := face.quotes.Fetch(ctx)
		fyne.Do(func() {
			face.setQuote(quote)
			face.refresh.Enable()
		})
	}()
}

// SetDarkMode switches between the light and dark variants.
func (face *Window) SetDarkMode(dark bool) {
	face.applyTheme(dark)
}

func (face *Window) toggleTheme() {
	face.applyTheme(!face.darkMode)
	if face.options.OnThemeChange != nil {
		face.options.OnThemeChange(face.darkMode)
	}
}

func (face *Window) applyTheme(dark bool) {
	face.darkMode = dark
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	face.app.Settings().SetTheme(newVariantTheme(variant))
	face.themeButton.SetText(themeButtonText(dark))
	face.clockText.Color = theme.Color(theme.ColorNameForeground)
	face.clockText.Refresh()
	face.statsCount.Color = theme.Color(theme.ColorNameForeground)
	face.statsCount.Refresh()
}

func (face *Window) setQuote(quote quotes.Quote) {
	face.quoteText.SetText("“" + quote.Text + "”")
	face.quoteAuthor.SetText("- " + quote.Author)
}

// render must run on the fyne thread.
func (face *Window) render(snapshot engine.Snapshot) {
	face.window.SetTitle(display.WindowTitle(snapshot))

	for phase, button := range face.phaseButtons {
		if phase == snapshot.Phase {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		if snapshot.Running {
			button.Disable()
		} else {
			button.Enable()
		}
		button.Refresh()
	}

	face.phaseLabel.Text = display.PhaseLabel(snapshot.Phase)
	face.phaseLabel.Color = phaseColor(snapshot.Phase)
	face.phaseLabel.Refresh()

	face.clockText.Text = display.FormatClock(snapshot.Remaining)
	face.clockText.Refresh()

	face.sessionLabel.SetText(display.SessionLine(snapshot))

	face.toggle.SetText(display.ToggleLabel(snapshot.Running))
	if snapshot.Running {
		face.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		face.toggle.SetIcon(theme.MediaPlayIcon())
	}

	face.progress.SetValue(snapshot.Progress)

	face.statsCount.Text = strconv.Itoa(snapshot.CompletedFocus)
	face.statsCount.Refresh()
}

func themeButtonText(dark bool) string {
	if dark {
		return "Light"
	}
	return "Dark"
}

func phaseColor(phase engine.Phase) color.Color {
	switch phase {
	case engine.ShortBreak:
		return color.NRGBA{R: 16, G: 185, B: 129, A: 255}
	case engine.LongBreak:
		return color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	default:
		return color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	}
}
