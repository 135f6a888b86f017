package disassembler

import (
	"encoding/binary"
	"testing"

	"github.com/Urethramancer/m68kcfa/cpu"
	"github.com/Urethramancer/m68kcfa/pcode"
)

func TestStoreClassifiesReturn(t *testing.T) {
	code := make([]byte, 2)
	binary.BigEndian.PutUint16(code, cpu.OPRTS)
	store, err := NewStore(code, 16, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	op, ok := store.GetOp(pcode.Addr{Machine: 0})
	if !ok {
		t.Fatalf("expected an op at address 0")
	}
	if op.Kind != pcode.KindReturn {
		t.Errorf("got kind %v, want Return", op.Kind)
	}
}

func TestStoreCachesDecodedInstructions(t *testing.T) {
	code := make([]byte, 2)
	binary.BigEndian.PutUint16(code, cpu.OPNOP)
	store, err := NewStore(code, 16, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	op1, _ := store.GetOp(pcode.Addr{Machine: 0})
	op2, _ := store.GetOp(pcode.Addr{Machine: 0})
	if op1 != op2 {
		t.Errorf("repeated GetOp at same address should return identical ops: %v != %v", op1, op2)
	}
}

func TestStoreUnmodeledOpcodeIsData(t *testing.T) {
	code := make([]byte, 2)
	binary.BigEndian.PutUint16(code, 0x1234) // move.b (d8,a4,Xn),d1, not in our control-flow taxonomy
	store, err := NewStore(code, 16, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	op, ok := store.GetOp(pcode.Addr{Machine: 0})
	if !ok {
		t.Fatalf("expected an op at address 0")
	}
	if op.Kind != pcode.KindData {
		t.Errorf("got kind %v, want Data for an ordinary move", op.Kind)
	}
}
