// Package tui is the terminal front-end. It drives a session.Controller from
// a tcell event loop, so keystrokes and idle checks share one goroutine.
package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"dangerouswriter/internal/core/clock"
	"dangerouswriter/internal/core/model"
	"dangerouswriter/internal/core/session"
	"dangerouswriter/internal/export"
	"dangerouswriter/internal/logging"
)

type mode int

const (
	modeEdit mode = iota
	modeConfirm
	modeExportPath
)

// Options configures the terminal front-end.
type Options struct {
	Config    model.SessionConfig
	IntroText string
	Clock     clock.Clock
	// Scheduler defaults to timers that post their callbacks to the screen's
	// event queue.
	Scheduler clock.Scheduler
}

var (
	barStyle     = tcell.StyleDefault.Reverse(true)
	warningStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	promptStyle  = tcell.StyleDefault.Bold(true)
)

// App is the terminal editor. It is the session's view and prompter.
type App struct {
	log        *zap.Logger
	screen     tcell.Screen
	buffer     *Buffer
	controller *session.Controller

	mode           mode
	wordCount      string
	remaining      string
	warning        bool
	timeoutSeconds int
	message        string

	confirmText    string
	onConfirm      func(bool)
	pathInput      []rune
	extensions     []string
	onExportChosen func(io.WriteCloser, error)

	lines  []visualLine
	scroll int
	quit   bool
	done   chan struct{}
}

// New creates the terminal editor on an initialised screen. The logger is
// taken from ctx.
func New(ctx context.Context, screen tcell.Screen, options Options) *App {
	app := &App{
		log:    logging.FromContext(ctx).Named("tui"),
		screen: screen,
		buffer: NewBuffer(options.IntroText),
		done:   make(chan struct{}),
	}
	scheduler := options.Scheduler
	if scheduler == nil {
		scheduler = clock.Dispatching(app.post)
	}
	app.controller = session.New(app.log, session.Options{
		Config:    options.Config,
		Clock:     options.Clock,
		Scheduler: scheduler,
	}, app.buffer, app, app)
	app.buffer.OnChange(app.controller.TextChanged)
	return app
}

// Controller returns the session controller.
func (app *App) Controller() *session.Controller {
	return app.controller
}

// Start begins the session and draws the first frame.
func (app *App) Start() {
	app.controller.Start()
	app.draw()
}

// Run starts the session and processes events until the user quits.
func (app *App) Run() {
	app.Start()
	for !app.quit {
		event := app.screen.PollEvent()
		if event == nil {
			app.stop()
			return
		}
		app.HandleEvent(event)
	}
}

// Done is closed once the user quits.
func (app *App) Done() <-chan struct{} {
	return app.done
}

// HandleEvent applies one tcell event and redraws.
func (app *App) HandleEvent(event tcell.Event) {
	switch ev := event.(type) {
	case *tcell.EventInterrupt:
		if callback, ok := ev.Data().(func()); ok {
			callback()
		}
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventKey:
		switch app.mode {
		case modeConfirm:
			app.handleConfirmKey(ev)
		case modeExportPath:
			app.handleExportKey(ev)
		default:
			app.handleEditKey(ev)
		}
	}
	if !app.quit {
		app.draw()
	}
}

func (app *App) handleEditKey(ev *tcell.EventKey) {
	app.controller.Keystroke()
	app.message = ""

	switch ev.Key() {
	case tcell.KeyEnter:
		app.buffer.Insert('\n')
		return
	case tcell.KeyTab:
		app.buffer.Insert('\t')
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.buffer.Backspace()
		return
	case tcell.KeyDelete:
		app.buffer.Delete()
		return
	case tcell.KeyLeft:
		app.buffer.Left()
		return
	case tcell.KeyRight:
		app.buffer.Right()
		return
	case tcell.KeyUp:
		app.moveVertical(-1)
		return
	case tcell.KeyDown:
		app.moveVertical(1)
		return
	case tcell.KeyHome:
		row, _ := cursorPosition(app.buffer.runes, app.layout(), app.buffer.Cursor())
		app.buffer.SetCursor(offsetAt(app.buffer.runes, app.lines, row, 0))
		return
	case tcell.KeyEnd:
		row, _ := cursorPosition(app.buffer.runes, app.layout(), app.buffer.Cursor())
		app.buffer.SetCursor(app.lines[row].end)
		return
	case tcell.KeyPgUp:
		app.controller.StepTimeout(1)
		return
	case tcell.KeyPgDn:
		app.controller.StepTimeout(-1)
		return
	}

	switch ctrlLetter(ev) {
	case 'q':
		app.stop()
	case 'n':
		app.controller.NewSession()
	case 'e':
		app.controller.Export()
	case 'g':
		app.controller.SetGraceEnabled(!app.controller.GraceEnabled())
	case 0:
		if ev.Key() == tcell.KeyRune {
			app.buffer.Insert(ev.Rune())
		}
	}
}

func (app *App) handleConfirmKey(ev *tcell.EventKey) {
	answer, decided := false, false
	switch {
	case ev.Key() == tcell.KeyEscape:
		decided = true
	case ev.Key() == tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'y':
			answer, decided = true, true
		case 'n':
			decided = true
		}
	}
	if !decided {
		return
	}
	callback := app.onConfirm
	app.mode = modeEdit
	app.onConfirm = nil
	if callback != nil {
		callback(answer)
	}
}

func (app *App) handleExportKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.finishExport(nil, nil)
	case tcell.KeyEnter:
		path := strings.TrimSpace(string(app.pathInput))
		if path == "" {
			app.finishExport(nil, nil)
			return
		}
		file, err := export.Create(path)
		if err != nil {
			app.finishExport(nil, err)
			return
		}
		app.message = "Exported to " + file.Name()
		app.finishExport(file, nil)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.pathInput) > 0 {
			app.pathInput = app.pathInput[:len(app.pathInput)-1]
		}
	case tcell.KeyRune:
		app.pathInput = append(app.pathInput, ev.Rune())
	}
}

func (app *App) finishExport(writer io.WriteCloser, err error) {
	callback := app.onExportChosen
	app.mode = modeEdit
	app.onExportChosen = nil
	app.pathInput = nil
	app.extensions = nil
	if callback != nil {
		callback(writer, err)
	}
}

func (app *App) moveVertical(delta int) {
	lines := app.layout()
	row, col := cursorPosition(app.buffer.runes, lines, app.buffer.Cursor())
	app.buffer.SetCursor(offsetAt(app.buffer.runes, lines, row+delta, col))
}

func (app *App) stop() {
	if app.quit {
		return
	}
	app.quit = true
	app.controller.Stop()
	close(app.done)
	app.log.Info("terminal session closed")
}

// post hands callback to the event loop. It runs on timer goroutines and
// retries while the event queue is full.
func (app *App) post(callback func()) {
	for app.screen.PostEvent(tcell.NewEventInterrupt(callback)) != nil {
		select {
		case <-app.done:
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// SetWordCount implements session.View.
func (app *App) SetWordCount(label string) {
	app.wordCount = label
}

// SetRemaining implements session.View.
func (app *App) SetRemaining(label string, warning bool) {
	app.remaining = label
	app.warning = warning
}

// SetTimeout implements session.View.
func (app *App) SetTimeout(seconds int) {
	app.timeoutSeconds = seconds
}

// Confirm asks a y/n question on the status line.
func (app *App) Confirm(title, message string, onResult func(bool)) {
	app.mode = modeConfirm
	app.confirmText = fmt.Sprintf("%s: %s (y/n)", title, message)
	app.onConfirm = onResult
}

// Inform shows a message on the status line until the next keystroke.
func (app *App) Inform(title, message string) {
	app.message = title + ": " + message
}

// ShowError shows err on the status line until the next keystroke.
func (app *App) ShowError(err error) {
	app.message = "Error: " + err.Error()
}

// ChooseExportTarget prompts for a path on the status line.
func (app *App) ChooseExportTarget(suggestedName string, extensions []string, onChosen func(io.WriteCloser, error)) {
	app.mode = modeExportPath
	app.pathInput = []rune(suggestedName)
	app.extensions = extensions
	app.onExportChosen = onChosen
}

func (app *App) exportPrompt() string {
	kinds := make([]string, 0, len(app.extensions))
	for _, extension := range app.extensions {
		if extension == export.AnyExtension {
			extension = "any"
		}
		kinds = append(kinds, extension)
	}
	if len(kinds) == 0 {
		return "Export to: " + string(app.pathInput)
	}
	return fmt.Sprintf("Export to (%s): %s", strings.Join(kinds, ", "), string(app.pathInput))
}

func (app *App) textArea() (width, height int) {
	width, height = app.screen.Size()
	return max(1, width), max(1, height-2)
}

func (app *App) layout() []visualLine {
	width, _ := app.textArea()
	app.lines = wrapLines(app.buffer.runes, width)
	return app.lines
}

func (app *App) draw() {
	app.screen.Clear()
	width, height := app.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	grace := "off"
	if app.controller.GraceEnabled() {
		grace = "on"
	}
	top := fmt.Sprintf(" Idle Timeout (sec): %s [PgUp/PgDn]  Grace: %s [^G]  ^N New Session  ^E Export  ^Q Quit",
		strconv.Itoa(app.timeoutSeconds), grace)
	app.fillRow(0, width, barStyle)
	drawText(app.screen, 0, 0, width, top, barStyle)

	lines := app.layout()
	_, areaHeight := app.textArea()
	row, col := cursorPosition(app.buffer.runes, lines, app.buffer.Cursor())
	if row < app.scroll {
		app.scroll = row
	}
	if row >= app.scroll+areaHeight {
		app.scroll = row - areaHeight + 1
	}
	for y := 0; y < areaHeight && app.scroll+y < len(lines); y++ {
		line := lines[app.scroll+y]
		x := 0
		for _, r := range app.buffer.runes[line.start:line.end] {
			cells := runeWidth(r)
			if r == '\t' {
				r = ' '
			}
			app.screen.SetContent(x, y+1, r, nil, tcell.StyleDefault)
			x += cells
		}
	}

	status := height - 1
	switch app.mode {
	case modeConfirm:
		x := drawText(app.screen, 0, status, width, app.confirmText, promptStyle)
		app.screen.ShowCursor(min(x+1, width-1), status)
	case modeExportPath:
		prompt := app.exportPrompt()
		x := drawText(app.screen, 0, status, width, prompt, promptStyle)
		app.screen.ShowCursor(min(x, width-1), status)
	default:
		x := drawText(app.screen, 0, status, width, app.wordCount+"  ", tcell.StyleDefault)
		style := tcell.StyleDefault
		if app.warning {
			style = warningStyle
		}
		x = drawText(app.screen, x, status, width, app.remaining, style)
		if app.message != "" {
			drawText(app.screen, x, status, width, "  "+app.message, tcell.StyleDefault)
		}
		if row-app.scroll < areaHeight {
			app.screen.ShowCursor(min(col, width-1), row-app.scroll+1)
		}
	}
	app.screen.Show()
}

func (app *App) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		app.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes text from column x and returns the column after it. Wide
// runes such as the hourglass take two cells.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	for _, r := range text {
		cells := runeWidth(r)
		if x+cells > width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += cells
	}
	return x
}

// ctrlLetter returns the lower-case letter of a Ctrl chord, or 0.
func ctrlLetter(ev *tcell.EventKey) rune {
	key := ev.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return rune('a' + int(key-tcell.KeyCtrlA))
	}
	if key == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		return unicode.ToLower(ev.Rune())
	}
	return 0
}
