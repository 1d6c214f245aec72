package main

import (
	"github.com/spf13/cobra"

	"driven/cpu"
	"driven/loader"
	"driven/log"
	"driven/mem"
)

func newRunCmd() *cobra.Command {
	var addr uint16
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "run IMAGE",
		Short: "Load a program image and run it to completion (HLT, IN, OUT, EI, or DI)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &mem.Bus{}
			if err := loader.Load(bus, args[0], addr); err != nil {
				return err
			}

			c := &cpu.Cpu{}
			c.Init(bus)
			c.Regs.PC = addr

			for steps := 0; maxSteps == 0 || steps < maxSteps; steps++ {
				result := c.Step()
				if result.Status != cpu.Continue {
					log.Logger.Info().
						Stringer("status", result.Status).
						Int("steps", steps+1).
						Uint64("cycles", c.CycleCount()).
						Msg("machine paused")
					break
				}
			}

			log.Logger.Info().Str("state", c.String()).Msg("final state")
			return nil
		},
	}

	cmd.Flags().Uint16Var(&addr, "addr", 0x0000, "load address")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many Step calls even without a Pause (0 = unbounded)")
	return cmd
}
