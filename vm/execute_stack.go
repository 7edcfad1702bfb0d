package vm

import "fmt"

// bankBase returns the lowest register index selected by the H bit.
func bankBase(highBank bool) int {
	if highBank {
		return 8
	}
	return 0
}

// executePushPull performs a push or pull of the registers named in the
// instruction's register-list mask, growing the stack toward lower
// addresses. Each transferred register is a 32-bit big-endian word.
func (m *Machine) executePushPull(inst Instruction) error {
	if inst.PushPullLoad {
		return m.pull(inst)
	}
	return m.push(inst)
}

func (m *Machine) push(inst Instruction) error {
	if inst.LinkOrPC {
		sp := (m.Regs.GetSP() - RegSize) & StackMask
		if err := m.Mem.WriteWord(sp, m.Regs.GetLR()); err != nil {
			return fmt.Errorf("push LR: %w", err)
		}
		m.Regs.SetSP(sp)
	}

	base := bankBase(inst.HighBank)
	for i := 7; i >= 0; i-- {
		if inst.RegList&(1<<uint(i)) == 0 {
			continue
		}
		sp := (m.Regs.GetSP() - RegSize) & StackMask
		if err := m.Mem.WriteWord(sp, m.Regs.Get(base+i)); err != nil {
			return fmt.Errorf("push r%d: %w", base+i, err)
		}
		m.Regs.SetSP(sp)
	}
	return nil
}

func (m *Machine) pull(inst Instruction) error {
	base := bankBase(inst.HighBank)
	for i := 0; i < 8; i++ {
		if inst.RegList&(1<<uint(i)) == 0 {
			continue
		}
		sp := m.Regs.GetSP() & StackMask
		w, err := m.Mem.ReadWord(sp)
		if err != nil {
			return fmt.Errorf("pull r%d: %w", base+i, err)
		}
		m.Regs.Set(base+i, w)
		m.Regs.SetSP(sp + RegSize)
	}

	if inst.LinkOrPC {
		sp := m.Regs.GetSP() & StackMask
		w, err := m.Mem.ReadWord(sp)
		if err != nil {
			return fmt.Errorf("pull PC: %w", err)
		}
		m.Regs.SetSP(sp + RegSize)
		m.redirect(w)
	}
	return nil
}
