package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Urethramancer/m68kcfa/disassembler"
)

// newDisassembleCmd wraps the teacher's own linear-sweep disassembler
// unchanged, keeping its plain text-dump behavior available standalone.
func newDisassembleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "disassemble <input-file>",
		Short: "Linear-sweep disassemble a raw M68000 code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}
			text, err := disassembler.Disassemble(code)
			if err != nil {
				return fmt.Errorf("disassembly failed: %w", err)
			}
			if output == "" {
				fmt.Println(text)
				return nil
			}
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
