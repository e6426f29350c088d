package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/rv32-sdb/vm"
)

// TUI is a minimal text interface over SDB: a scrolling output pane, a
// register strip above it, and a command input below. A full
// source/disassembly/stack layout like the reference multi-panel
// debugger has no home here — there is no disassembly or source map for
// a pure expression-and-watchpoint front end, only registers and
// memory reachable through expressions.
type TUI struct {
	SDB *SDB

	App          *tview.Application
	RegisterView *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

// NewTUI builds a TUI bound to sdb.
func NewTUI(sdb *SDB) *TUI {
	t := &TUI{
		SDB: sdb,
		App: tview.NewApplication(),
	}
	t.build()
	return t
}

func (t *TUI) build() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("(sdb) ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, RegisterViewRows, 0, false).
		AddItem(t.OutputView, 0, 1, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			t.App.Stop()
			return nil
		}
		return event
	})

	t.App.SetRoot(layout, true).SetFocus(t.CommandInput)
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	t.CommandInput.SetText("")

	if err := t.SDB.ExecuteCommand(cmd); err != nil {
		t.writeOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if out := t.SDB.GetOutput(); out != "" {
		t.writeOutput(out)
	}
	t.refreshRegisters()

	if t.SDB.VM.State == vm.StateQuit {
		t.App.Stop()
	}
}

func (t *TUI) writeOutput(text string) {
	_, _ = fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// refreshRegisters redraws the register strip, RegisterGroupSize
// registers per row.
func (t *TUI) refreshRegisters() {
	t.RegisterView.Clear()

	cpu := t.SDB.VM.CPU
	var lines []string
	var row []string
	for i := 0; i < len(cpu.GPR); i++ {
		row = append(row, fmt.Sprintf("%-3s 0x%08x", vm.RegisterNames[i], cpu.GetGPR(i)))
		if len(row) == RegisterGroupSize {
			lines = append(lines, strings.Join(row, "  "))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, "  "))
	}
	lines = append(lines, fmt.Sprintf("%-3s 0x%08x", "pc", cpu.PC))

	_, _ = fmt.Fprint(t.RegisterView, strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.refreshRegisters()
	return t.App.Run()
}
