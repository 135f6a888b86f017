package disassembler

import (
	"encoding/binary"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/pcode"
)

// Store adapts the M68000 linear-sweep decoder (decode, in disassemble.go)
// to the pcode.Store contract the analysis engine consumes. One machine
// instruction maps to exactly one pcode.Op at slot 0 (see DESIGN.md for
// why this repo does not model a real multi-op microcode expansion for
// M68000); slot 1 synthesizes a direct Branch to the next instruction,
// matching pcode_store.rs's boundary behavior for any caller that queries
// it directly.
//
// Decoded instructions are cached in a bounded LRU (see DESIGN.md for why
// this replaces rather than reuses the teacher's unreachable CPU.ICache).
type Store struct {
	code   []byte
	cache  *lru.Cache[uint32, decoded]
	logger *zap.Logger
}

type decoded struct {
	mnemonic string
	operands string
	size     uint32
}

// NewStore builds a Store over a raw code image, with an LRU decode cache
// of the given capacity. A nil logger is replaced with a no-op logger.
func NewStore(code []byte, cacheSize int, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[uint32, decoded](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{code: code, cache: cache, logger: logger}, nil
}

// Entry satisfies pcode.EntryPoint: M68000 images in this repo's test
// fixtures always start execution at address 0, matching disassemble.go's
// own linear-sweep entry point.
func (s *Store) Entry() pcode.Addr { return pcode.Addr{Machine: 0, Slot: 0} }

func (s *Store) GetOp(a pcode.Addr) (pcode.Op, bool) {
	if a.Slot > 0 {
		return s.boundaryOp(a)
	}
	d, ok := s.decodeAt(uint32(a.Machine))
	if !ok {
		return pcode.Op{}, false
	}
	return s.classify(a, d), true
}

func (s *Store) boundaryOp(a pcode.Addr) (pcode.Op, bool) {
	d, ok := s.decodeAt(uint32(a.Machine))
	if !ok {
		return pcode.Op{}, false
	}
	next := a.Machine + uint64(d.size)
	return pcode.Op{Kind: pcode.KindBranch, Target: pcode.Const(int64(next)), Mnemonic: "(boundary)", Size: uint64(d.size)}, true
}

func (s *Store) decodeAt(machine uint32) (decoded, bool) {
	if d, ok := s.cache.Get(machine); ok {
		return d, true
	}
	pc := int(machine)
	if pc+1 >= len(s.code) {
		return decoded{}, false
	}
	op := binary.BigEndian.Uint16(s.code[pc:])
	var extensions []byte
	if pc+2 < len(s.code) {
		extensions = s.code[pc+2:]
	}
	mn, ops, used := decode(op, 0, extensions)
	d := decoded{mnemonic: mn, operands: ops, size: uint32(2 + used)}
	s.cache.Add(machine, d)
	return d, true
}

// classify maps a decoded mnemonic to the closed IR op taxonomy (C9).
// Unmodeled mnemonics fall back to KindData (conservative fallthrough),
// logged at Debug per the non-fatal error policy in SPEC_FULL.md §7.
func (s *Store) classify(a pcode.Addr, d decoded) pcode.Op {
	base := pcode.Op{Mnemonic: d.mnemonic, Size: uint64(d.size)}
	switch {
	case d.mnemonic == "rts" || d.mnemonic == "rte" || d.mnemonic == "rtr":
		base.Kind = pcode.KindReturn
	case d.mnemonic == "jmp":
		base.Kind = pcode.KindIndirectBranch
		if target, ok := s.absoluteTarget(d.operands); ok {
			base.Kind = pcode.KindBranch
			base.Target = pcode.Const(target)
		}
	case d.mnemonic == "jsr":
		base.Kind = pcode.KindIndirectCall
		if target, ok := s.absoluteTarget(d.operands); ok {
			base.Kind = pcode.KindCall
			base.Target = pcode.Const(target)
		}
	case d.mnemonic == "bra" || d.mnemonic == "bsr":
		base.Kind = pcode.KindBranch
		if d.mnemonic == "bsr" {
			base.Kind = pcode.KindCall
		}
		base.Target = pcode.Relative(int64(parseBranchOffset(d.operands)) + 2)
	case isBranchMnemonic(d.mnemonic), strings.HasPrefix(d.mnemonic, "db"):
		base.Kind = pcode.KindConditionalBranch
		base.Target = pcode.Relative(int64(parseBranchOffset(d.operands)) + 2)
	case d.mnemonic == "illegal" || d.mnemonic == "trap" || strings.HasPrefix(d.mnemonic, "trap"):
		base.Kind = pcode.KindCallOther
	default:
		base.Kind = pcode.KindData
		s.logger.Debug("unmodeled opcode treated as data fallthrough", zap.String("mnemonic", d.mnemonic))
	}
	return base
}

func (s *Store) absoluteTarget(operands string) (int64, bool) {
	addr := parseAbsoluteAddress(operands)
	if addr < 0 {
		return 0, false
	}
	return int64(addr), true
}
