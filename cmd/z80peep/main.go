package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/opcode"
	"github.com/retrocore/z80vm/internal/peephole"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80peep",
		Short: "Peephole search for shorter register-only instruction sequences",
	}

	rootCmd.AddCommand(searchCmd(), showCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func searchCmd() *cobra.Command {
	var chains int
	var iterations int
	var decay float64
	var output string
	var deadFlagsStr string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for a shorter sequence equivalent to --target",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetStr, _ := cmd.Flags().GetString("target")
			if targetStr == "" {
				return fmt.Errorf("--target is required")
			}
			target, err := parseAssembly(targetStr)
			if err != nil {
				return fmt.Errorf("failed to parse target: %w", err)
			}

			deadFlags, err := parseDeadFlags(deadFlagsStr)
			if err != nil {
				return err
			}

			fmt.Printf("Target: %s (%d bytes, %d T-states)\n",
				disasmSeq(target), peephole.SeqByteSize(target), peephole.SeqTStates(target))
			fmt.Printf("Chains: %d  Iterations/chain: %d  Decay: %.6f\n\n", chains, iterations, decay)

			found := peephole.Deduplicate(peephole.Search(peephole.Config{
				Target:     target,
				Chains:     chains,
				Iterations: iterations,
				Decay:      decay,
				DeadFlags:  deadFlags,
			}))

			fmt.Printf("%d unique replacement(s) found\n", len(found))
			for i, f := range found {
				fmt.Printf("  %d. %s", i+1, disasmSeq(f.Rule.Replacement))
				if f.Rule.DeadFlags != 0 {
					fmt.Printf(" (-%d bytes, -%d cycles, dead flags 0x%02X)\n",
						f.Rule.BytesSaved, f.Rule.CyclesSaved, f.Rule.DeadFlags)
				} else {
					fmt.Printf(" (-%d bytes, -%d cycles)\n", f.Rule.BytesSaved, f.Rule.CyclesSaved)
				}
			}

			if output != "" && len(found) > 0 {
				rules := make([]peephole.Rule, len(found))
				for i, f := range found {
					rules[i] = f.Rule
				}
				if err := peephole.SaveCheckpoint(output, &peephole.Checkpoint{Rules: rules}); err != nil {
					return err
				}
				fmt.Printf("Written to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().String("target", "", "Target assembly sequence (colon-separated)")
	cmd.Flags().IntVar(&chains, "chains", runtime.NumCPU(), "Number of MCMC chains")
	cmd.Flags().IntVar(&iterations, "iterations", 100_000, "Iterations per chain")
	cmd.Flags().Float64Var(&decay, "decay", 0.9999, "Temperature decay factor")
	cmd.Flags().StringVar(&output, "output", "", "Checkpoint output path")
	cmd.Flags().StringVar(&deadFlagsStr, "dead-flags", "none", "Dead flags mask: none, carry, all, or hex (e.g. 0x01)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Accepted; has no effect on output")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [checkpoint]",
		Short: "List the rules recorded in a checkpoint file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ckpt, err := peephole.LoadCheckpoint(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%d rule(s)\n", len(ckpt.Rules))
			for i, r := range ckpt.Rules {
				fmt.Printf("  %d. %s -> %s (-%d bytes, -%d cycles)\n",
					i+1, disasmSeq(r.Source), disasmSeq(r.Replacement), r.BytesSaved, r.CyclesSaved)
			}
			return nil
		},
	}
}

func parseDeadFlags(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return 0, nil
	case "carry":
		return cpu.FlagC, nil
	case "all":
		return 0xFF, nil
	default:
		s = strings.TrimPrefix(strings.ToLower(s), "0x")
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid --dead-flags value %q: use none, carry, all, or hex (e.g. 0x01)", s)
		}
		return uint8(v), nil
	}
}

// parseAssembly converts text like "INC A : INC A" into an instruction
// sequence, one colon-separated part per instruction.
func parseAssembly(text string) ([]peephole.Instruction, error) {
	var seq []peephole.Instruction
	for _, part := range strings.Split(text, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		instr, err := parseSingleInstruction(part)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q: %w", part, err)
		}
		seq = append(seq, instr)
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("no instructions parsed from %q", text)
	}
	return seq, nil
}

func parseSingleInstruction(text string) (peephole.Instruction, error) {
	upper := strings.ToUpper(strings.TrimSpace(text))

	for _, op := range peephole.AllOps() {
		mnemonic := strings.ToUpper(opcode.Catalog[op].Mnemonic)

		if !opcode.HasImmediate(op) {
			if upper == mnemonic {
				return peephole.Instruction{Op: op}, nil
			}
			continue
		}

		placeholder := "N"
		nIdx := strings.LastIndex(mnemonic, placeholder)
		if nIdx < 0 {
			continue
		}
		prefix, suffix := mnemonic[:nIdx], mnemonic[nIdx+1:]
		if !strings.HasPrefix(upper, prefix) || (suffix != "" && !strings.HasSuffix(upper, suffix)) {
			continue
		}

		valStr := upper[len(prefix):]
		if suffix != "" {
			valStr = valStr[:len(valStr)-len(suffix)]
		}
		val, err := strconv.ParseUint(strings.TrimSpace(valStr), 0, 16)
		if err != nil {
			continue
		}
		return peephole.Instruction{Op: op, Imm: uint16(val)}, nil
	}
	return peephole.Instruction{}, fmt.Errorf("unknown instruction: %s", text)
}

func disasmSeq(seq []peephole.Instruction) string {
	var b strings.Builder
	for i, instr := range seq {
		if i > 0 {
			b.WriteString(" : ")
		}
		b.WriteString(peephole.Disassemble(instr))
	}
	return b.String()
}
