package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/rv32-sdb/config"
	"github.com/lookbusy1344/rv32-sdb/debugger"
	"github.com/lookbusy1344/rv32-sdb/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		tuiMode     = flag.Bool("tui", false, "Use TUI (Text User Interface) debugger")
		memorySize  = flag.Uint64("memory-size", 0, "Guest physical memory size in bytes (default: from config)")
		configFile  = flag.String("config", "", "Config file path (default: platform config directory)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("rv32-sdb %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	size := cfg.Memory.Size
	if *memorySize != 0 {
		size = uint32(*memorySize) //nolint:gosec // user-supplied flag, truncation acceptable
	}

	machine := vm.NewVM(size)
	machine.State = vm.StateRunning

	sdb := debugger.NewSDB(machine)

	if *tuiMode {
		t := debugger.NewTUI(sdb)
		if err := t.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := debugger.RunCLI(sdb, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func printHelp() {
	fmt.Printf(`rv32-sdb %s

A simple debugger (SDB) for a RISC-V RV32 instruction-set simulator:
expression evaluation over guest registers and memory, and watchpoints
that report value changes after each instruction step.

Usage: rv32-sdb [options]

Options:
  -help              Show this help message
  -version           Show version information
  -tui               Start in TUI (Text User Interface) mode instead of CLI
  -memory-size N     Guest physical memory size in bytes (default: from config, 128MB)
  -config FILE       Config file path (default: platform config directory)

Debugger Commands:
  help, h            Show command list
  c                  Continue execution
  si [N]             Step N instructions (default 1)
  info r             Show registers
  info w             Show watchpoints
  x N EXPR           Examine N words of memory starting at address EXPR
  p EXPR             Evaluate an expression
  w EXPR             Set a watchpoint on EXPR
  d N                Delete watchpoint N
  q                  Quit

Expression syntax:
  Decimal and hex literals (0x1f), register references ($a0, $sp, $pc, $$0),
  + - * / arithmetic, == != <= >= comparisons, && || logical operators,
  ! logical not, unary - negation, unary * memory dereference, and
  parentheses.

Examples:
  rv32-sdb
  rv32-sdb -tui
  rv32-sdb -memory-size 1048576
`, Version)
}
