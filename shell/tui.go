package shell

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/d-mariano/dpu/tui"
)

// cmdTUI launches the terminal dashboard, refusing to do so when standard
// output is not attached to a real terminal.
func (s *Shell) cmdTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(s.out, "the terminal viewer requires an interactive terminal")
		return nil
	}
	return tui.New(s.Machine).Run()
}
