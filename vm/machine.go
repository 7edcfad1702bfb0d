package vm

import (
	"fmt"
	"log"
)

// Machine is the full architectural state of a DPU: its memory, registers,
// and flags, together with the fetch/execute cycle that advances them.
type Machine struct {
	Mem   *Memory
	Regs  *Registers
	Flags Flags

	// MaxCycles bounds Run; zero means DefaultMaxCycles.
	MaxCycles uint64
	Cycles    uint64

	// Logger receives diagnostics for execution-level exceptional
	// conditions (undefined opcodes, out-of-range addresses). It never
	// aborts the cycle loop.
	Logger *log.Logger
}

// NewMachine returns a freshly reset DPU.
func NewMachine() *Machine {
	return &Machine{
		Mem:    NewMemory(),
		Regs:   NewRegisters(),
		Logger: log.Default(),
	}
}

// Reset clears registers, hidden registers, and flags. Memory is untouched.
func (m *Machine) Reset() {
	m.Regs.Reset()
	m.Flags.Reset()
	m.Cycles = 0
}

// Cycle performs one instruction cycle: if IRActive is false it fetches the
// next 32-bit instruction pair and executes IR0; otherwise it executes the
// already-fetched IR1. See Machine.redirect for how a taken branch or
// PC-restoring pull interacts with this buffering.
func (m *Machine) Cycle() error {
	if !m.Flags.IRActive {
		pc := m.Regs.GetPC()
		word, err := m.Mem.ReadWord(pc)
		if err != nil {
			m.Logger.Printf("fetch at 0x%04X failed: %v", pc, err)
			m.Flags.Stop = true
			return fmt.Errorf("fetch at 0x%04X: %w", pc, err)
		}
		m.Regs.MAR = pc
		m.Regs.IR = word
		m.Regs.SetPC(pc + RegSize)
		m.Regs.CIR = m.Regs.IR0()
		m.Flags.IRActive = true
	} else {
		m.Regs.CIR = m.Regs.IR1()
		m.Flags.IRActive = false
	}

	m.Cycles++
	if err := m.execute(Decode(m.Regs.CIR)); err != nil {
		// Execution-level exceptional conditions (undefined opcode, an
		// out-of-range load/store address) are logged and do not stop
		// the machine; only a failed fetch does that, above.
		m.Logger.Printf("cycle %d: %v", m.Cycles, err)
	}
	return nil
}

// execute dispatches a decoded instruction to its class handler.
func (m *Machine) execute(inst Instruction) error {
	switch inst.Class {
	case ClassDataProcessing:
		return m.executeDataProcessing(inst)
	case ClassImmediate:
		return m.executeImmediate(inst)
	case ClassLoadStore:
		return m.executeLoadStore(inst)
	case ClassCondBranch:
		return m.executeCondBranch(inst)
	case ClassPushPull:
		return m.executePushPull(inst)
	case ClassBranch:
		return m.executeBranch(inst)
	case ClassStop:
		m.Flags.Stop = true
		return nil
	default:
		m.Logger.Printf("undefined instruction 0x%04X at cycle %d", inst.Raw, m.Cycles)
		return nil
	}
}

// Step performs exactly one instruction cycle. It reports the underlying
// error (if any); execution-level conditions other than a failed fetch do
// not set Stop, so the caller can choose to continue stepping.
func (m *Machine) Step() error {
	return m.Cycle()
}

// Run executes instruction cycles until the Stop flag is set or the cycle
// limit is reached. It returns true if Stop was the reason execution ended.
func (m *Machine) Run() (haltedByStop bool, err error) {
	limit := m.MaxCycles
	if limit == 0 {
		limit = DefaultMaxCycles
	}
	for !m.Flags.Stop {
		if m.Cycles >= limit {
			return false, nil
		}
		if cycleErr := m.Cycle(); cycleErr != nil {
			return false, cycleErr
		}
	}
	return true, nil
}
