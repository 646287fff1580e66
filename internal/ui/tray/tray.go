package tray

import (
	"fyne.io/fyne/v2"

	"focusflow/internal/core/engine"
	"focusflow/internal/ui/display"
)

// MenuHost is implemented by desktop.App.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSwitch      func(engine.Phase)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	menu        *fyne.Menu
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	switchItem  *fyne.MenuItem
	phaseItems  map[engine.Phase]*fyne.MenuItem
	lastStatus  string
	lastRunning bool
}

// New creates a tray manager and installs its menu.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:       host,
		callbacks:  callbacks,
		phaseItems: make(map[engine.Phase]*fyne.MenuItem, len(engine.Phases)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show FocusFlow", func() { call(manager.callbacks.OnShow) })
	manager.toggleItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnToggle) })
	reset := fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })

	phaseItems := make([]*fyne.MenuItem, 0, len(engine.Phases))
	for _, phase := range engine.Phases {
		target := phase
		item := fyne.NewMenuItem(display.PhaseLabel(phase), func() {
			if manager.callbacks.OnSwitch != nil {
				manager.callbacks.OnSwitch(target)
			}
		})
		manager.phaseItems[phase] = item
		phaseItems = append(phaseItems, item)
	}
	manager.switchItem = fyne.NewMenuItem("Switch to", nil)
	manager.switchItem.ChildMenu = fyne.NewMenu("", phaseItems...)

	preferences := fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) })
	quit := fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })

	manager.menu = fyne.NewMenu(display.AppName,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.toggleItem,
		reset,
		manager.switchItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	if host != nil {
		host.SetSystemTrayMenu(manager.menu)
	}

	return manager
}

// Update reflects a snapshot in the menu. The menu is only rebuilt when the
// visible text or enabled state changes.
func (manager *Manager) Update(snapshot engine.Snapshot) {
	status := "Status: " + display.StatusLine(snapshot)
	if status == manager.lastStatus && snapshot.Running == manager.lastRunning && !manager.phaseChanged(snapshot.Phase) {
		return
	}
	manager.lastStatus = status
	manager.lastRunning = snapshot.Running

	manager.statusItem.Label = status
	manager.toggleItem.Label = display.ToggleLabel(snapshot.Running)
	manager.switchItem.Disabled = snapshot.Running
	for phase, item := range manager.phaseItems {
		item.Checked = phase == snapshot.Phase
	}
	manager.refreshMenu()
}

// Menu returns the installed menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) phaseChanged(phase engine.Phase) bool {
	item := manager.phaseItems[phase]
	return item != nil && !item.Checked
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
