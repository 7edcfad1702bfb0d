package vm

import "fmt"

// Memory is the DPU's flat, byte-addressable address space.
type Memory struct {
	Data [MemSize]byte
}

// NewMemory creates a zeroed memory bank.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadByte reads a single byte from memory.
func (m *Memory) ReadByte(address uint32) (byte, error) {
	if address >= MemSize {
		return 0, fmt.Errorf("memory access violation: address 0x%04X is out of range (size %d)", address, MemSize)
	}
	return m.Data[address], nil
}

// WriteByte writes a single byte to memory.
func (m *Memory) WriteByte(address uint32, value byte) error {
	if address >= MemSize {
		return fmt.Errorf("memory access violation: address 0x%04X is out of range (size %d)", address, MemSize)
	}
	m.Data[address] = value
	return nil
}

// ReadWord reads a 32-bit big-endian word starting at address.
func (m *Memory) ReadWord(address uint32) (uint32, error) {
	if address > MemSize-RegSize {
		return 0, fmt.Errorf("memory access violation: word read at 0x%04X exceeds memory bounds", address)
	}
	b0, _ := m.ReadByte(address)
	b1, _ := m.ReadByte(address + 1)
	b2, _ := m.ReadByte(address + 2)
	b3, _ := m.ReadByte(address + 3)
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3), nil
}

// WriteWord writes a 32-bit value as a big-endian word starting at address.
func (m *Memory) WriteWord(address uint32, value uint32) error {
	if address > MemSize-RegSize {
		return fmt.Errorf("memory access violation: word write at 0x%04X exceeds memory bounds", address)
	}
	_ = m.WriteByte(address, byte(value>>24))
	_ = m.WriteByte(address+1, byte(value>>16))
	_ = m.WriteByte(address+2, byte(value>>8))
	_ = m.WriteByte(address+3, byte(value))
	return nil
}

// ReadHalfword reads a 16-bit big-endian instruction word starting at address.
func (m *Memory) ReadHalfword(address uint32) (uint16, error) {
	if address > MemSize-2 {
		return 0, fmt.Errorf("memory access violation: halfword read at 0x%04X exceeds memory bounds", address)
	}
	b0, _ := m.ReadByte(address)
	b1, _ := m.ReadByte(address + 1)
	return uint16(b0)<<8 | uint16(b1), nil
}

// LoadBytes copies src into memory starting at offset 0, truncating to MemSize.
// It returns the number of bytes actually copied.
func (m *Memory) LoadBytes(src []byte) int {
	n := copy(m.Data[:], src)
	return n
}

// Bytes returns a copy of the first n bytes of memory, clamped to MemSize.
func (m *Memory) Bytes(n int) []byte {
	if n > MemSize {
		n = MemSize
	}
	if n < 0 {
		n = 0
	}
	out := make([]byte, n)
	copy(out, m.Data[:n])
	return out
}
