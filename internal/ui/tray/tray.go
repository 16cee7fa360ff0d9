package tray

import (
	"fmt"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnNewSession func()
	OnExport     func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	menu        *fyne.Menu
	statusItem  *fyne.MenuItem
	callbacks   Callbacks
	shownSecond int
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		shownSecond: -1,
	}

	manager.statusItem = fyne.NewMenuItem("Idle: starting...", nil)
	manager.statusItem.Disabled = true

	manager.menu = fyne.NewMenu("Dangerous Writer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("New Session", func() {
			if manager.callbacks.OnNewSession != nil {
				manager.callbacks.OnNewSession()
			}
		}),
		fyne.NewMenuItem("Export…", func() {
			if manager.callbacks.OnExport != nil {
				manager.callbacks.OnExport()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	manager.refreshMenu()

	return manager
}

// SetRemaining updates the status line. The menu is only refreshed when the
// displayed whole second changes.
func (manager *Manager) SetRemaining(remaining time.Duration) {
	second := int(math.Ceil(remaining.Seconds()))
	if second < 0 {
		second = 0
	}
	if second == manager.shownSecond {
		return
	}
	manager.shownSecond = second
	manager.statusItem.Label = StatusLabel(second)
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// StatusLabel formats the tray status for a whole number of seconds.
func StatusLabel(seconds int) string {
	if seconds <= 0 {
		return "Idle: erasing"
	}
	return fmt.Sprintf("Idle: %ds left", seconds)
}

// Item returns the menu item with the given label, or nil.
func (manager *Manager) Item(label string) *fyne.MenuItem {
	for _, item := range manager.menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
