package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Urethramancer/m68kcfa/cfg"
	"github.com/Urethramancer/m68kcfa/compound"
	"github.com/Urethramancer/m68kcfa/disassembler"
	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/unwind"
)

// newCfgCmd builds the subcommand running the CPA engine over a raw M68000
// code image and emitting its CFG in DOT form, mirroring the teacher's
// cmd/dis68's read-input/write-output-or-stdout convention. --branch-bound
// and --unwind-bound select the location x branchbound compound or the
// back-edge bounded unwind domain in place of the plain location analysis;
// they are mutually exclusive since no domain composes all three.
func newCfgCmd() *cobra.Command {
	var (
		entry       uint32
		callPolicy  string
		cacheSize   int
		output      string
		branchBound int
		unwindBound int
	)

	cmd := &cobra.Command{
		Use:   "cfg <input-file>",
		Short: "Run the CPA engine and emit a control-flow graph in DOT form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if branchBound > 0 && unwindBound > 0 {
				return fmt.Errorf("--branch-bound and --unwind-bound are mutually exclusive")
			}

			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}

			behavior, err := parseCallBehavior(callPolicy)
			if err != nil {
				return err
			}

			logger := newLogger()
			store, err := disassembler.NewStore(code, cacheSize, logger)
			if err != nil {
				return fmt.Errorf("building pcode store: %w", err)
			}

			entryAddr := pcode.Addr{Machine: uint64(entry)}
			var graph *cfg.Graph[pcode.Addr, pcode.Op]
			switch {
			case branchBound > 0:
				_, graph = compound.RunLocationBranchBound(store, entryAddr, behavior, branchBound, logger)
			case unwindBound > 0:
				_, _, graph = unwind.RunAnalysis(store, entryAddr, behavior, unwindBound, logger)
			default:
				_, graph = location.NewAnalysis(store, entryAddr, behavior, logger)
			}

			dot := graph.DOT(
				func(a pcode.Addr) string { return a.String() },
				func(op pcode.Op) string { return op.Mnemonic },
			)

			if output == "" {
				fmt.Println(dot)
				return nil
			}
			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&entry, "entry", 0, "entry address to start analysis from")
	cmd.Flags().StringVar(&callPolicy, "call-policy", "branch", "call policy: branch, step-over, or terminate")
	cmd.Flags().IntVar(&cacheSize, "decode-cache", 256, "decoded instruction LRU cache size")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&branchBound, "branch-bound", 0, "bound the number of conditional branches per path (location x branchbound compound); 0 disables")
	cmd.Flags().IntVar(&unwindBound, "unwind-bound", 0, "bound how many times each back edge may be traversed per path (unwind domain); 0 disables")
	return cmd
}

func parseCallBehavior(s string) (location.CallBehavior, error) {
	switch s {
	case "branch":
		return location.CallBranch, nil
	case "step-over":
		return location.CallStepOver, nil
	case "terminate":
		return location.CallTerminate, nil
	default:
		return 0, fmt.Errorf("unknown call policy %q: want branch, step-over, or terminate", s)
	}
}
