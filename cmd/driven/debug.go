package main

import (
	"github.com/spf13/cobra"

	"driven/cpu"
	"driven/debugger"
	"driven/loader"
	"driven/mem"
)

func newDebugCmd() *cobra.Command {
	var addr uint16

	cmd := &cobra.Command{
		Use:   "debug IMAGE",
		Short: "Load a program image and step it interactively under the TUI debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &mem.Bus{}
			if err := loader.Load(bus, args[0], addr); err != nil {
				return err
			}

			c := &cpu.Cpu{}
			c.Init(bus)
			c.Regs.PC = addr

			return debugger.Run(c, bus)
		},
	}

	cmd.Flags().Uint16Var(&addr, "addr", 0x0000, "load address")
	return cmd
}
