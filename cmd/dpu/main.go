// Command dpu is the DPU simulator's command-line entry point: an
// interactive REPL, a headless run-to-halt mode, and version information.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/d-mariano/dpu/config"
	"github.com/d-mariano/dpu/image"
	"github.com/d-mariano/dpu/shell"
	"github.com/d-mariano/dpu/vm"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "dpu",
		Short: "DPU — a 16-bit instruction-set simulator",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default: platform config dir)")

	root.AddCommand(newReplCmd(&configPath))
	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newVersionCmd())

	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func newReplCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [image]",
		Short: "start the interactive shell, optionally pre-loading a memory image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			m := vm.NewMachine()
			sb := image.Sandbox{Root: cfg.Sandbox.Root}

			if len(args) == 1 {
				n, err := image.Load(sb, args[0], m.Mem)
				if err != nil {
					return fmt.Errorf("load %s: %w", args[0], err)
				}
				fmt.Printf("loaded %d bytes from %s\n", n, args[0])
			}

			sh := shell.New(m, cfg, os.Stdin, os.Stdout)
			return sh.Run()
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var maxCycles uint64

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "load an image and run to halt without a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			m := vm.NewMachine()
			sb := image.Sandbox{Root: cfg.Sandbox.Root}
			if _, err := image.Load(sb, args[0], m.Mem); err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			m.MaxCycles = cfg.Execution.MaxCycles
			if maxCycles > 0 {
				m.MaxCycles = maxCycles
			}

			halted, err := m.Run()
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			printFinalRegisters(m)

			if !halted {
				return fmt.Errorf("cycle limit (%d) reached before STOP", m.MaxCycles)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "override the configured cycle safety limit")
	return cmd
}

func printFinalRegisters(m *vm.Machine) {
	for i := 0; i < vm.NumRegs; i++ {
		fmt.Printf("R%-2d=%08X  ", i, m.Regs.Get(i))
		if (i+1)%4 == 0 {
			fmt.Println()
		}
	}
	fmt.Printf("Z=%v S=%v C=%v STOP=%v\n", m.Flags.Z, m.Flags.S, m.Flags.C, m.Flags.Stop)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("dpu %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
}
