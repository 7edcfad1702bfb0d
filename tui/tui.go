// Package tui is an optional live dashboard over a *vm.Machine: registers,
// flags, and a scrollable hex dump, refreshed after every step.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/d-mariano/dpu/vm"
)

// TUI is the terminal dashboard.
type TUI struct {
	Machine *vm.Machine

	App          *tview.Application
	MainLayout   *tview.Flex
	RegisterView *tview.TextView
	FlagsView    *tview.TextView
	MemoryView   *tview.TextView
	StatusView   *tview.TextView

	memoryAddress uint32
}

// New builds a dashboard over m.
func New(m *vm.Machine) *TUI {
	t := &TUI{
		Machine: m,
		App:     tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.refresh()
	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.FlagsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.FlagsView.SetBorder(true).SetTitle(" Flags ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.StatusView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.StatusView.SetBorder(true).SetTitle(" n=step  g=run  z=reset  q=quit ")
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.RegisterView, 0, 2, false).
		AddItem(t.FlagsView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 10, 0, false).
		AddItem(t.MemoryView, 0, 1, false).
		AddItem(t.StatusView, 3, 0, false)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			t.App.Stop()
			return nil
		case 'n':
			if err := t.Machine.Step(); err != nil {
				t.Machine.Logger.Printf("tui step: %v", err)
			}
			t.refresh()
			return nil
		case 'g':
			t.Machine.MaxCycles = vm.DefaultMaxCycles
			if _, err := t.Machine.Run(); err != nil {
				t.Machine.Logger.Printf("tui run: %v", err)
			}
			t.refresh()
			return nil
		case 'z':
			t.Machine.Reset()
			t.refresh()
			return nil
		}
		return event
	})
}

func (t *TUI) refresh() {
	r := t.Machine.Regs
	regs := ""
	for i := 0; i < 16; i++ {
		regs += fmt.Sprintf("R%-2d=%08X  ", i, r.Get(i))
		if (i+1)%4 == 0 {
			regs += "\n"
		}
	}
	t.RegisterView.SetText(regs)

	f := t.Machine.Flags
	t.FlagsView.SetText(fmt.Sprintf("Z=%v\nS=%v\nC=%v\nSTOP=%v\nIR_ACTIVE=%v\ncycles=%d",
		f.Z, f.S, f.C, f.Stop, f.IRActive, t.Machine.Cycles))

	mem := ""
	for row := uint32(0); row < 128; row += 16 {
		mem += fmt.Sprintf("%04X: ", t.memoryAddress+row)
		for col := uint32(0); col < 16; col++ {
			b, err := t.Machine.Mem.ReadByte(t.memoryAddress + row + col)
			if err != nil {
				break
			}
			mem += fmt.Sprintf("%02X ", b)
		}
		mem += "\n"
	}
	t.MemoryView.SetText(mem)
}

// Run blocks until the user quits the dashboard.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.MainLayout, true).EnableMouse(false).Run()
}
