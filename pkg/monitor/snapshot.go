package monitor

import (
	"encoding/binary"
	"fmt"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/internal/types"
)

// snapshotSize is the length of an encoded Snapshot message.
const snapshotSize = 22

// EncodeSnapshot encodes s as a Snapshot message:
//
//	0      Snapshot
//	1-2    PC
//	3-4    SP
//	5-11   A B C D E H L
//	12     PSW
//	13     bit 0 interrupts enabled, bit 1 halted
//	14-21  cycles
//
// Multi-byte fields are little endian.
func EncodeSnapshot(s cpu.Snapshot) []byte {
	b := make([]byte, snapshotSize)
	b[0] = Snapshot
	binary.LittleEndian.PutUint16(b[1:], s.PC)
	binary.LittleEndian.PutUint16(b[3:], s.SP)
	copy(b[5:], []byte{s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.PSW})
	b[13] = types.SetBits(b[13], types.Bit0, s.InterruptsEnabled)
	b[13] = types.SetBits(b[13], types.Bit1, s.Halted)
	binary.LittleEndian.PutUint64(b[14:], s.Cycles)
	return b
}

// DecodeSnapshot decodes a message produced by EncodeSnapshot.
func DecodeSnapshot(b []byte) (cpu.Snapshot, error) {
	if len(b) != snapshotSize || b[0] != Snapshot {
		return cpu.Snapshot{}, fmt.Errorf("not a snapshot message (%d bytes)", len(b))
	}
	return cpu.Snapshot{
		PC: binary.LittleEndian.Uint16(b[1:]),
		SP: binary.LittleEndian.Uint16(b[3:]),
		A:  b[5], B: b[6], C: b[7], D: b[8], E: b[9], H: b[10], L: b[11],
		PSW:               b[12],
		InterruptsEnabled: b[13]&types.Bit0 != 0,
		Halted:            b[13]&types.Bit1 != 0,
		Cycles:            binary.LittleEndian.Uint64(b[14:]),
	}, nil
}
