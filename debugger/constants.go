package debugger

import "github.com/lookbusy1344/rv32-sdb/vm"

// Expression-engine and watchpoint-pool bounds, defined in package vm
// and re-exported here for the lexer and watchpoint pool.
const (
	MaxTokens          = vm.MaxTokens
	MaxLexemeLen       = vm.MaxLexemeLen
	MaxExprLen         = vm.MaxExprLen
	WatchpointPoolSize = vm.WatchpointPoolSize
)

// TUI display constants. The text UI is a single output pane plus a
// register strip and command input, much narrower than a full source/
// disassembly/stack multi-panel layout: there is no disassembly or
// source to show for a pure expression-and-watchpoint debugger.
const (
	// RegisterViewRows is the fixed height of the register panel
	// (registers grouped RegisterGroupSize per row, plus borders).
	RegisterViewRows = 9

	// RegisterGroupSize is the number of registers shown per row.
	RegisterGroupSize = 6
)

// Memory examine ("x") display constants.
const (
	// ExamineWordsPerRow is how many 32-bit words cmd_x prints per line.
	ExamineWordsPerRow = 4
)
