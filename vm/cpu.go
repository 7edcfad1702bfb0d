package vm

// Registers holds the sixteen 32-bit architectural registers plus the
// hidden registers used internally by the instruction cycle.
type Registers struct {
	R [NumRegs]uint32 // R0-R12 general purpose, R13=SP, R14=LR, R15=PC

	MAR uint32 // memory address register
	MBR uint32 // memory buffer register
	IR  uint32 // last fetched 32-bit instruction pair (IR0<<16 | IR1)
	ALU uint32 // last arithmetic/logical result
	CIR uint16 // currently selected 16-bit instruction
}

// NewRegisters returns a zeroed register file.
func NewRegisters() *Registers {
	return &Registers{}
}

// Reset zeroes every register and hidden register.
func (r *Registers) Reset() {
	for i := range r.R {
		r.R[i] = 0
	}
	r.MAR = 0
	r.MBR = 0
	r.IR = 0
	r.ALU = 0
	r.CIR = 0
}

// GetSP returns the stack pointer.
func (r *Registers) GetSP() uint32 { return r.R[SP] }

// SetSP sets the stack pointer.
func (r *Registers) SetSP(v uint32) { r.R[SP] = v }

// GetLR returns the link register.
func (r *Registers) GetLR() uint32 { return r.R[LR] }

// SetLR sets the link register.
func (r *Registers) SetLR(v uint32) { r.R[LR] = v }

// GetPC returns the program counter.
func (r *Registers) GetPC() uint32 { return r.R[PC] }

// SetPC sets the program counter directly, bypassing the IR-active interlock.
// Callers that are redirecting execution as a result of an instruction should
// use Machine.redirect instead.
func (r *Registers) SetPC(v uint32) { r.R[PC] = v }

// Get returns the value of register index n (0-15).
func (r *Registers) Get(n int) uint32 {
	if n < 0 || n >= NumRegs {
		return 0
	}
	return r.R[n]
}

// Set assigns the value of register index n (0-15).
func (r *Registers) Set(n int, v uint32) {
	if n < 0 || n >= NumRegs {
		return
	}
	r.R[n] = v
}

// IR0 returns the high 16 bits of the last fetched instruction pair.
func (r *Registers) IR0() uint16 { return uint16(r.IR >> 16) }

// IR1 returns the low 16 bits of the last fetched instruction pair.
func (r *Registers) IR1() uint16 { return uint16(r.IR) }

// Flags holds the condition flags and the IR-active control bit.
type Flags struct {
	Z        bool // zero
	S        bool // sign (negative)
	C        bool // carry
	Stop     bool // halt requested
	IRActive bool // true after IR0 has executed and before IR1 has
}

// Reset clears all flags.
func (f *Flags) Reset() {
	*f = Flags{}
}

// UpdateZS derives the Z and S flags from a 32-bit ALU result.
func (f *Flags) UpdateZS(result uint32) {
	f.Z = result == 0
	f.S = result&SignBitMask != 0
}

// UpdateZSC derives Z, S, and C from a 32-bit ALU result and an explicit carry.
func (f *Flags) UpdateZSC(result uint32, carry bool) {
	f.UpdateZS(result)
	f.C = carry
}
