// Package shell implements the line-oriented interactive command loop that
// drives a *vm.Machine: load/dump/modify memory, single-step or run, print
// registers, and persist memory to disk.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/d-mariano/dpu/config"
	"github.com/d-mariano/dpu/image"
	"github.com/d-mariano/dpu/vm"
)

// Shell is the interactive command dispatcher.
type Shell struct {
	Machine *vm.Machine
	Config  *config.Config
	Sandbox image.Sandbox

	in  *bufio.Scanner
	out io.Writer
}

// New returns a Shell reading commands from in and writing output to out.
func New(m *vm.Machine, cfg *config.Config, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		Machine: m,
		Config:  cfg,
		Sandbox: image.Sandbox{Root: cfg.Sandbox.Root},
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run executes the read-dispatch loop until q(uit) or end of input.
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, "dpu> ")
		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		cmd := strings.ToLower(line[:1])
		if cmd == "q" {
			return nil
		}

		if err := s.dispatch(cmd); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return s.in.Err()
}

func (s *Shell) dispatch(cmd string) error {
	switch cmd {
	case "d":
		return s.cmdDump()
	case "g":
		return s.cmdGo()
	case "l":
		return s.cmdLoad()
	case "m":
		return s.cmdModify()
	case "r":
		s.cmdRegisters()
		return nil
	case "t":
		return s.cmdTrace()
	case "w":
		return s.cmdWrite()
	case "v":
		return s.cmdTUI()
	case "z":
		s.cmdReset()
		return nil
	case "h", "?":
		s.cmdHelp()
		return nil
	default:
		fmt.Fprintf(s.out, "unknown command: %s (type 'h' for help)\n", cmd)
		return nil
	}
}

// prompt writes a label and reads back one line of trimmed input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
