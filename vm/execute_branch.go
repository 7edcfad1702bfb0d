package vm

// executeCondBranch evaluates the condition and, if taken, redirects PC by
// the signed 8-bit offset.
func (m *Machine) executeCondBranch(inst Instruction) error {
	if !inst.Cond.Evaluate(&m.Flags) {
		return nil
	}
	target := uint32(int64(m.Regs.GetPC()) + int64(inst.Offset))
	m.redirect(target)
	return nil
}

// executeBranch performs the unconditional branch, optionally saving the
// return address in LR before redirecting PC to the zero-extended target.
func (m *Machine) executeBranch(inst Instruction) error {
	if inst.Link {
		m.Regs.SetLR(m.Regs.GetPC())
	}
	m.redirect(inst.Target)
	return nil
}

// redirect assigns PC as the result of a branch or PC-restoring pull. Any
// such assignment that occurs while IRActive is still true must back off by
// one instruction width, because the fetch that produced IR1 has already
// advanced PC past the pair that contains the instruction doing the
// redirecting.
func (m *Machine) redirect(target uint32) {
	if m.Flags.IRActive {
		target -= InstrSize
	}
	m.Flags.IRActive = false
	m.Regs.SetPC(target)
}
