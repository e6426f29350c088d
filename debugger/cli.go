package debugger

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lookbusy1344/rv32-sdb/vm"
)

// RunCLI drives sdb from in, writing prompts and command output to out,
// until the user quits or in is exhausted. The REPL itself is plain
// bufio.Scanner over stdin: the reference monitor uses GNU readline for
// history and line editing, but that concern is a replaceable host
// facility here, not part of the debugger's own semantics, and sdb's
// own CommandHistory already tracks what was run.
func RunCLI(sdb *SDB, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "(sdb) ")
		if !scanner.Scan() {
			break
		}

		if err := sdb.ExecuteCommand(scanner.Text()); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		if output := sdb.GetOutput(); output != "" {
			fmt.Fprint(out, output)
		}

		if sdb.VM.State == vm.StateQuit {
			break
		}
	}

	return scanner.Err()
}
