// Crispy is a small line-editing REPL for the terminal. It reads a line with
// emacs-style key bindings and prints how the line is interpreted.
package main

import (
	"os"

	"src.crispy.sh/pkg/buildinfo"
	"src.crispy.sh/pkg/prog"
	"src.crispy.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, shell.Program{})))
}
