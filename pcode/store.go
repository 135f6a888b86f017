package pcode

// Store is the contract the analysis engine uses to read microcode. A
// concrete implementation (disassembler.Store, for M68000) decodes machine
// instructions lazily and exposes them one slot at a time.
//
// Slot 0 at a machine address is always the real decoded operation. Any
// slot past what the concrete provider emits synthesizes a direct Branch
// to Next of the owning instruction; GetOp is expected to perform this
// synthesis itself so callers never special-case slot boundaries.
type Store interface {
	GetOp(a Addr) (Op, bool)
}

// EntryPoint is an optional capability a Store may also implement, naming
// the address analysis should start from absent an explicit one.
type EntryPoint interface {
	Entry() Addr
}

// AddrCarrier is implemented by any abstract state that exposes the
// concrete address it currently sits at, which the CPA engine needs to
// look the next op up in the Store. A state with no concrete address
// (widened to Top, or a compound state whose location factor has widened)
// has nothing left to transfer from.
type AddrCarrier interface {
	Addr() (Addr, bool)
}
