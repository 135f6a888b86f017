package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Urethramancer/m68kcfa/disassembler"
)

// newDecodeCmd decodes a single opcode word, mirroring the direct
// disassembler.TestableDecode entry point the teacher's own test suite
// drives.
func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex-opcode>",
		Short: "Decode a single 16-bit opcode word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 16, 16)
			if err != nil {
				return fmt.Errorf("parsing opcode %q: %w", args[0], err)
			}
			mn, operands, _ := disassembler.TestableDecode(uint16(v), 0, nil)
			if operands == "" {
				fmt.Println(mn)
			} else {
				fmt.Printf("%s %s\n", mn, operands)
			}
			return nil
		},
	}
	return cmd
}
