package kernel

import "encoding/binary"

// frameWords is the word layout of a freshly fabricated task frame,
// bottom word (lowest address, what SavedSP points at) first:
//
//	R4 R5 R6 R7 R8 R9 R10 R11 LR(sw) | R0 R1 R2 R3 R12 LR(hw) PC xPSR
//
// The first 9 words are the software-saved frame a restore POPs before
// branching to the exception-return code in LR(sw); the last 8 are the
// hardware-stacked frame the CPU's own exception-return sequence pops.
const frameWords = MinStackWords

// pcPlaceholder encodes a task's identity into the frame's PC word for
// layout verification. There is no real program counter to branch into
// in a hosted Go process — see Kernel.resumeTask for how a task is
// actually started — so this word exists purely so the fabricated
// frame can be checked byte-for-byte against the reference layout.
func pcPlaceholder(id int) uint32 {
	return 0xE4700000 | uint32(id&0xFFFF)
}

// fabricateInitialFrame writes the 17-word initial stack frame into
// stack (growing down from the end of stack) so that the first restore
// resumes the task as if it had just been interrupted at its entry
// point, and returns the resulting SavedSP as a byte offset into stack.
//
// Layout (ascending address): R4..R11 written as literal small integers
// for debugging, then the software-saved link register set to
// InitialExceptionReturn, then the hardware-stacked frame R0..R3, R12,
// LR (= InitialExceptionReturn), PC, xPSR (= InitialStatusRegister).
func fabricateInitialFrame(stack []byte, cfg Config, taskID int) int {
	const word = 4
	top := len(stack)

	// Hardware-stacked frame: 8 words, highest addresses.
	hw := top - 8*word
	binary.LittleEndian.PutUint32(stack[hw+0*word:], 0)                          // R0
	binary.LittleEndian.PutUint32(stack[hw+1*word:], 1)                          // R1
	binary.LittleEndian.PutUint32(stack[hw+2*word:], 2)                          // R2
	binary.LittleEndian.PutUint32(stack[hw+3*word:], 3)                          // R3
	binary.LittleEndian.PutUint32(stack[hw+4*word:], 12)                         // R12
	binary.LittleEndian.PutUint32(stack[hw+5*word:], cfg.InitialExceptionReturn) // LR
	binary.LittleEndian.PutUint32(stack[hw+6*word:], pcPlaceholder(taskID))      // PC
	binary.LittleEndian.PutUint32(stack[hw+7*word:], cfg.InitialStatusRegister)  // xPSR

	// Software-saved frame: R4..R11 then LR, 9 words immediately below.
	sw := hw - 9*word
	binary.LittleEndian.PutUint32(stack[sw+8*word:], cfg.InitialExceptionReturn) // LR
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(stack[sw+i*word:], uint32(4+i)) // R4..R11
	}

	return sw
}

// frameSnapshot is a decoded view of a fabricated frame, used by tests
// to assert on the exact layout without duplicating byte offsets.
type frameSnapshot struct {
	R      [8]uint32 // R4..R11
	SWLR   uint32
	R0123  [4]uint32
	R12    uint32
	HWLR   uint32
	PC     uint32
	XPSR   uint32
}

func readFrame(stack []byte, savedSP int) frameSnapshot {
	const word = 4
	var f frameSnapshot
	for i := 0; i < 8; i++ {
		f.R[i] = binary.LittleEndian.Uint32(stack[savedSP+i*word:])
	}
	f.SWLR = binary.LittleEndian.Uint32(stack[savedSP+8*word:])
	hw := savedSP + 9*word
	for i := 0; i < 4; i++ {
		f.R0123[i] = binary.LittleEndian.Uint32(stack[hw+i*word:])
	}
	f.R12 = binary.LittleEndian.Uint32(stack[hw+4*word:])
	f.HWLR = binary.LittleEndian.Uint32(stack[hw+5*word:])
	f.PC = binary.LittleEndian.Uint32(stack[hw+6*word:])
	f.XPSR = binary.LittleEndian.Uint32(stack[hw+7*word:])
	return f
}
