package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"driven/cpu"
	"driven/loader"
	"driven/mem"
)

func newDumpCmd() *cobra.Command {
	var addr uint16
	var steps int
	var raw bool

	// A standalone pflag.FlagSet, merged into the cobra command below,
	// for the one flag ("--raw") that makes sense only on this
	// subcommand and that we want defined independently of cobra's
	// embedded flag set.
	dumpFlags := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	dumpFlags.BoolVar(&raw, "raw", false, "print only the one-line register summary, skip the go-spew struct dump")

	cmd := &cobra.Command{
		Use:   "dump IMAGE",
		Short: "Load a program image, run a fixed number of steps, and print the full register/flag state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &mem.Bus{}
			if err := loader.Load(bus, args[0], addr); err != nil {
				return err
			}

			c := &cpu.Cpu{}
			c.Init(bus)
			c.Regs.PC = addr

			for i := 0; i < steps; i++ {
				if r := c.Step(); r.Status != cpu.Continue {
					break
				}
			}

			fmt.Println(c.String())
			if !raw {
				spew.Dump(c.Regs)
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&addr, "addr", 0x0000, "load address")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of Step calls to run before dumping")
	cmd.Flags().AddFlagSet(dumpFlags)
	return cmd
}
