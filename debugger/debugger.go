package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rv32-sdb/vm"
)

// SDB is the simple debugger: a VM, its expression evaluator, its
// watchpoint pool, command history and an output buffer, wired
// together the way the reference monitor's cmd_table dispatches over
// its own global state. Unlike the reference monitor, SDB owns no
// fetch/decode/execute loop of its own — StepAndCheck expects the
// embedding instruction-set simulator to have already advanced the
// guest by one instruction before it is called.
type SDB struct {
	VM          *vm.VM
	Evaluator   *Evaluator
	Watchpoints *WatchpointPool
	History     *CommandHistory

	Output strings.Builder
}

// NewSDB creates an SDB bound to machine with an empty watchpoint pool
// and command history.
func NewSDB(machine *vm.VM) *SDB {
	return &SDB{
		VM:          machine,
		Evaluator:   NewEvaluator(machine),
		Watchpoints: NewWatchpointPool(),
		History:     NewCommandHistory(),
	}
}

// GetOutput returns and clears the accumulated output buffer.
func (d *SDB) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *SDB) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

func (d *SDB) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

// StepAndCheck re-evaluates every watchpoint after the guest has
// executed one instruction, printing old/new values for anything that
// changed and moving the VM to STOP — unless it has already reached
// END, in which case the ended state takes priority. This mirrors
// check_watchpoints being called once per instruction from the
// monitor's main loop.
func (d *SDB) StepAndCheck() {
	changes := d.Watchpoints.CheckAll(d.VM)
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		d.Printf("Watchpoint %d: %s\n\nOld value = %d\nNew value = %d\n\n", c.ID, c.Expr, c.OldValue, c.NewValue)
	}
	if d.VM.State != vm.StateEnded {
		d.VM.State = vm.StateStop
	}
}

// ExecuteCommand parses and runs one command line, recording it in
// history unless it is empty.
func (d *SDB) ExecuteCommand(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	d.History.Add(line)

	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "help", "h":
		return d.cmdHelp()
	case "c":
		return d.cmdContinue()
	case "q":
		return d.cmdQuit()
	case "si":
		return d.cmdStep(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "x":
		return d.cmdExamine(args)
	case "p":
		return d.cmdPrint(args)
	case "w":
		return d.cmdWatch(args)
	case "d":
		return d.cmdDelete(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for a list)", cmd)
	}
}

func (d *SDB) cmdHelp() error {
	d.Println("Commands:")
	d.Println("  help              show this list")
	d.Println("  c                 continue execution")
	d.Println("  si [N]            step N instructions (default 1)")
	d.Println("  info r            show registers")
	d.Println("  info w            show watchpoints")
	d.Println("  x N EXPR          examine N words of memory starting at address EXPR")
	d.Println("  p EXPR            evaluate an expression")
	d.Println("  w EXPR            set a watchpoint on EXPR")
	d.Println("  d N               delete watchpoint N")
	d.Println("  q                 quit")
	return nil
}

func (d *SDB) cmdContinue() error {
	if d.VM.State == vm.StateEnded {
		return fmt.Errorf("program has ended")
	}
	d.VM.State = vm.StateRunning
	return nil
}

func (d *SDB) cmdQuit() error {
	d.VM.State = vm.StateQuit
	return nil
}

func (d *SDB) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return fmt.Errorf("si: invalid step count %q", args[0])
		}
		n = parsed
	}
	d.Printf("stepping %d instruction(s)\n", n)
	return nil
}

func (d *SDB) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info r|w")
	}
	switch args[0] {
	case "r":
		return d.infoRegisters()
	case "w":
		return d.infoWatchpoints()
	default:
		return fmt.Errorf("info: unknown subcommand %q", args[0])
	}
}

func (d *SDB) infoRegisters() error {
	for i, name := range vm.RegisterNames {
		var val uint32
		if i == vm.GPRCount {
			val = d.VM.CPU.PC
		} else {
			val = d.VM.CPU.GetGPR(i)
		}
		d.Printf("%-4s 0x%08x\t%d\n", name, val, vm.AsInt32(val))
	}
	return nil
}

func (d *SDB) infoWatchpoints() error {
	info := d.Watchpoints.Info()
	if len(info) == 0 {
		d.Println("No watchpoints.")
		return nil
	}
	for _, wp := range info {
		d.Printf("Watchpoint %d: %s\n", wp.ID, wp.Expr)
	}
	return nil
}

func (d *SDB) cmdExamine(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: x N EXPR")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("x: invalid word count %q", args[0])
	}
	addr, err := d.Evaluator.Eval(strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	for i := 0; i < n; i++ {
		wordAddr := addr + uint32(i*4)
		word, err := d.VM.PaddrRead(wordAddr, 4)
		if err != nil {
			return fmt.Errorf("x: %w", err)
		}
		if i%ExamineWordsPerRow == 0 {
			if i > 0 {
				d.Println()
			}
			d.Printf("0x%08x:", wordAddr)
		}
		d.Printf(" 0x%08x", word)
	}
	d.Println()
	return nil
}

func (d *SDB) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: p EXPR")
	}
	val, err := d.Evaluator.Eval(strings.Join(args, " "))
	if err != nil {
		d.Println("false")
		return nil
	}
	d.Printf("0x%x:\t%d\n", val, vm.AsInt32(val))
	return nil
}

func (d *SDB) cmdWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: w EXPR")
	}
	expr := strings.Join(args, " ")
	id, err := d.Watchpoints.Add(d.VM, expr)
	if err != nil {
		d.Println("Invalid expression.")
		return nil
	}
	d.Printf("Watchpoint %d: %s\n", id, expr)
	return nil
}

func (d *SDB) cmdDelete(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: d N")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("d: invalid watchpoint number %q", args[0])
	}
	if err := d.Watchpoints.Delete(id); err != nil {
		d.Printf("No watchpoint number %d.\n", id)
		return nil
	}
	d.Printf("Watchpoint %d deleted.\n", id)
	return nil
}
