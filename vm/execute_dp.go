package vm

import "fmt"

// executeDataProcessing runs a decoded data-processing instruction against m,
// updating RD, ALU, and the flags per the opcode table.
func (m *Machine) executeDataProcessing(inst Instruction) error {
	rd := m.Regs.Get(inst.Rd)
	rn := m.Regs.Get(inst.Rn)

	var result uint32
	var carry bool
	haveCarry := false
	write := true

	switch inst.DPOpcode {
	case OpAND:
		result = rd & rn
	case OpEOR:
		result = rd ^ rn
	case OpSUB:
		result, carry = SubWithCarryFlag(rd, rn)
		haveCarry = true
	case OpSXB:
		result = SignExtendByte(rn)
	case OpADD:
		result, carry = AddWithCarryFlag(rd, rn)
		haveCarry = true
	case OpADC:
		result, carry = AdcWithCarryFlag(rd, rn, m.Flags.C)
		haveCarry = true
	case OpLSR:
		result, carry = ShiftRightLogical(rd, rn)
		haveCarry = true
	case OpLSL:
		result, carry = ShiftLeftLogical(rd, rn)
		haveCarry = true
	case OpTST:
		result = rd & rn
		write = false
	case OpTEQ:
		result = rd ^ rn
		write = false
	case OpCMP:
		result, carry = SubWithCarryFlag(rd, rn)
		haveCarry = true
		write = false
	case OpROR:
		result, carry = RotateRight(rd, rn)
		haveCarry = true
	case OpORR:
		result = rd | rn
	case OpMOV:
		result = rn
	case OpBIC:
		result = rd &^ rn
	case OpMVN:
		result = ^rn
	default:
		return fmt.Errorf("undefined data-processing opcode %d", inst.DPOpcode)
	}

	m.Regs.ALU = result
	if haveCarry {
		m.Flags.UpdateZSC(result, carry)
	} else {
		m.Flags.UpdateZS(result)
	}
	if write {
		m.Regs.Set(inst.Rd, result)
	}
	return nil
}

// executeImmediate runs a decoded immediate-class instruction, reusing the
// data-processing carry conventions for ADD/SUB/CMP.
func (m *Machine) executeImmediate(inst Instruction) error {
	rd := m.Regs.Get(inst.Rd)
	imm := inst.Imm8

	var result uint32
	var carry bool
	haveCarry := false
	write := true

	switch inst.ImmOpcode {
	case ImmMOV:
		result = imm
	case ImmCMP:
		result, carry = SubWithCarryFlag(rd, imm)
		haveCarry = true
		write = false
	case ImmADD:
		result, carry = AddWithCarryFlag(rd, imm)
		haveCarry = true
	case ImmSUB:
		result, carry = SubWithCarryFlag(rd, imm)
		haveCarry = true
	default:
		return fmt.Errorf("undefined immediate opcode %d", inst.ImmOpcode)
	}

	m.Regs.ALU = result
	if haveCarry {
		m.Flags.UpdateZSC(result, carry)
	} else {
		m.Flags.UpdateZS(result)
	}
	if write {
		m.Regs.Set(inst.Rd, result)
	}
	return nil
}
