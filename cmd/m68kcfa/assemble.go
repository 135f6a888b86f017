package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Urethramancer/m68kcfa/assembler"
)

// newAssembleCmd wraps the teacher's standalone asm68 assembler as a CLI
// subcommand, so a program can be hand-written and assembled straight into
// a code image the cfg/disassemble subcommands can consume, without a
// separate binary.
func newAssembleCmd() *cobra.Command {
	var (
		baseAddress uint32
		output      string
	)

	cmd := &cobra.Command{
		Use:   "assemble <source-file>",
		Short: "Assemble M68000 source into a raw code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading source file: %w", err)
			}

			asm := assembler.New()
			code, err := asm.Assemble(string(src), baseAddress)
			if err != nil {
				return fmt.Errorf("assembly failed: %w", err)
			}
			if isLittleEndian() {
				swapToBigEndian(code)
			}

			if output == "" {
				for i, b := range code {
					fmt.Printf("%02X ", b)
					if (i+1)%16 == 0 {
						fmt.Println()
					}
				}
				fmt.Println()
				return nil
			}
			if err := os.WriteFile(output, code, 0644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&baseAddress, "base", 0, "base address to assemble at")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: hex dump to stdout)")
	return cmd
}

// isLittleEndian reports whether the current system uses little-endian
// byte order; the assembler emits words in host order and must be
// byte-swapped to M68000's big-endian convention when it differs.
func isLittleEndian() bool {
	var x uint16 = 1
	b := [2]byte{}
	binary.LittleEndian.PutUint16(b[:], x)
	return b[0] == 1
}

func swapToBigEndian(code []byte) {
	for i := 0; i+1 < len(code); i += 2 {
		code[i], code[i+1] = code[i+1], code[i]
	}
}
