package main

import (
	"fmt"
	"os"

	"github.com/retrocore/z80vm"
	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80run",
		Short: "Run, step, and disassemble Z80 programs",
	}

	rootCmd.AddCommand(runCmd(), stepCmd(), disasmCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var org, start uint16
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Load a raw binary image and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			m := z80.New()
			if !m.LoadAt(program, org) {
				return fmt.Errorf("program (%d bytes at %#04x) does not fit in 64KiB", len(program), org)
			}
			if !cmd.Flags().Changed("start") {
				start = org
			}

			steps := 0
			cb := z80.NewCallbacks()
			if maxSteps > 0 {
				cb.OnBeforeFetch(func(m *z80.Machine) {
					steps++
					if steps >= maxSteps {
						m.Stop()
					}
				})
			}
			m.StartWithOptions(start, cb)

			fmt.Printf("halted at PC=%#04x SP=%#04x\n", m.PC(), m.SP())
			printRegisters(m)
			return nil
		},
	}
	cmd.Flags().Uint16Var(&org, "org", 0, "load address")
	cmd.Flags().Uint16Var(&start, "start", 0, "entry point (defaults to --org)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many fetches (0 = unbounded)")
	return cmd
}

func stepCmd() *cobra.Command {
	var org, start uint16
	var count int

	cmd := &cobra.Command{
		Use:   "step [file]",
		Short: "Single-step a loaded program, printing a trace line per instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			m := z80.New()
			if !m.LoadAt(program, org) {
				return fmt.Errorf("program (%d bytes at %#04x) does not fit in 64KiB", len(program), org)
			}
			if !cmd.Flags().Changed("start") {
				start = org
			}
			m.Write16(cpu.PairPC, start)

			for i := 0; i < count && !m.Halted(); i++ {
				pc := m.PC()
				text := m.Disassemble(pc)
				m.Execute()
				fmt.Printf("%04X: %-16s A=%02X F=%02X BC=%04X DE=%04X HL=%04X SP=%04X\n",
					pc, text,
					m.Read8(cpu.RegA), m.Read8(cpu.RegF),
					m.Read16(cpu.PairBC), m.Read16(cpu.PairDE), m.Read16(cpu.PairHL), m.SP())
			}
			if m.Halted() {
				fmt.Printf("halted at %04X\n", m.PC())
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&org, "org", 0, "load address")
	cmd.Flags().Uint16Var(&start, "start", 0, "entry point (defaults to --org)")
	cmd.Flags().IntVar(&count, "count", 20, "maximum number of instructions to step")
	return cmd
}

func disasmCmd() *cobra.Command {
	var org uint16

	cmd := &cobra.Command{
		Use:   "disasm [file]",
		Short: "Disassemble a raw binary image from its first byte to its last",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			m := z80.New()
			if !m.LoadAt(program, org) {
				return fmt.Errorf("program (%d bytes at %#04x) does not fit in 64KiB", len(program), org)
			}

			addr := org
			end := org + uint16(len(program))
			for addr < end {
				text := m.Disassemble(addr)
				size := uint16(opcode.ByteSize(decodeAt(m, addr)))
				fmt.Printf("%04X: %s\n", addr, text)
				if size == 0 {
					size = 1
				}
				addr += size
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&org, "org", 0, "base address of the image")
	return cmd
}

// decodeAt re-decodes the opcode at addr purely to size the next advance;
// Machine.Disassemble already re-decoded it once for the text.
func decodeAt(m *z80.Machine, addr uint16) opcode.OpCode {
	saved := m.PC()
	m.Write16(cpu.PairPC, addr)
	op := cpu.Decode(&m.CPU, &m.RAM)
	m.Write16(cpu.PairPC, saved)
	return op
}

func printRegisters(m *z80.Machine) {
	fmt.Printf("A=%02X F=%02X BC=%04X DE=%04X HL=%04X\n",
		m.Read8(cpu.RegA), m.Read8(cpu.RegF),
		m.Read16(cpu.PairBC), m.Read16(cpu.PairDE), m.Read16(cpu.PairHL))
}
