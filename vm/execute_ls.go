package vm

import "fmt"

// executeLoadStore runs a decoded load/store instruction. An out-of-range
// address is an execution-level exceptional condition: it is logged by the
// caller and leaves RD/memory unmodified for this instruction.
func (m *Machine) executeLoadStore(inst Instruction) error {
	addr := m.Regs.Get(inst.Rn)

	if inst.Load {
		if inst.Byte {
			b, err := m.Mem.ReadByte(addr)
			if err != nil {
				return fmt.Errorf("load byte at 0x%04X: %w", addr, err)
			}
			m.Regs.Set(inst.Rd, uint32(b))
			return nil
		}
		w, err := m.Mem.ReadWord(addr)
		if err != nil {
			return fmt.Errorf("load word at 0x%04X: %w", addr, err)
		}
		m.Regs.Set(inst.Rd, w)
		return nil
	}

	rd := m.Regs.Get(inst.Rd)
	if inst.Byte {
		if err := m.Mem.WriteByte(addr, byte(rd)); err != nil {
			return fmt.Errorf("store byte at 0x%04X: %w", addr, err)
		}
		return nil
	}
	if err := m.Mem.WriteWord(addr, rd); err != nil {
		return fmt.Errorf("store word at 0x%04X: %w", addr, err)
	}
	return nil
}
