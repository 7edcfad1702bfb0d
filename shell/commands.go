package shell

import (
	"fmt"
	"strconv"

	"github.com/d-mariano/dpu/image"
)

// cmdDump prints a hex-and-ASCII rendering of a memory region.
func (s *Shell) cmdDump() error {
	offStr, ok := s.prompt("offset (hex): ")
	if !ok {
		return nil
	}
	offset, err := parseHex(offStr)
	if err != nil {
		return fmt.Errorf("invalid offset: %w", err)
	}

	lenStr, ok := s.prompt("length (hex): ")
	if !ok {
		return nil
	}
	length, err := parseHex(lenStr)
	if err != nil {
		return fmt.Errorf("invalid length: %w", err)
	}

	bytesPerLine := s.Config.Display.BytesPerLine
	if bytesPerLine <= 0 {
		bytesPerLine = 16
	}

	for row := uint32(0); row < length; row += uint32(bytesPerLine) {
		fmt.Fprintf(s.out, "%04X: ", offset+row)
		line := make([]byte, 0, bytesPerLine)
		for col := 0; col < bytesPerLine && row+uint32(col) < length; col++ {
			b, err := s.Machine.Mem.ReadByte(offset + row + uint32(col))
			if err != nil {
				fmt.Fprintf(s.out, "\n")
				return fmt.Errorf("dump: %w", err)
			}
			line = append(line, b)
			fmt.Fprintf(s.out, "%02X ", b)
		}
		fmt.Fprint(s.out, " ")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(s.out, "%c", b)
			} else {
				fmt.Fprint(s.out, ".")
			}
		}
		fmt.Fprintln(s.out)
	}
	return nil
}

// cmdGo runs instruction cycles until STOP is set or the cycle limit trips.
func (s *Shell) cmdGo() error {
	s.Machine.MaxCycles = s.Config.Execution.MaxCycles
	halted, err := s.Machine.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if !halted {
		fmt.Fprintf(s.out, "stopped: cycle limit (%d) reached before STOP\n", s.Machine.MaxCycles)
		return nil
	}
	fmt.Fprintf(s.out, "halted at STOP after %d cycles\n", s.Machine.Cycles)
	return nil
}

// cmdLoad reads a file into memory starting at offset 0.
func (s *Shell) cmdLoad() error {
	path, ok := s.prompt("filename: ")
	if !ok || path == "" {
		return nil
	}
	n, err := image.Load(s.Sandbox, path, s.Machine.Mem)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fmt.Fprintf(s.out, "loaded %d bytes from %s\n", n, path)
	return nil
}

// cmdModify enters an interactive byte-edit loop starting at a chosen
// offset; a "." on its own ends the session without error, and a value that
// is not a hex byte ends it with an error.
func (s *Shell) cmdModify() error {
	offStr, ok := s.prompt("offset (hex): ")
	if !ok {
		return nil
	}
	offset, err := parseHex(offStr)
	if err != nil {
		return fmt.Errorf("invalid offset: %w", err)
	}

	for {
		cur, err := s.Machine.Mem.ReadByte(offset)
		if err != nil {
			return fmt.Errorf("modify: %w", err)
		}
		input, ok := s.prompt(fmt.Sprintf("%04X: %02X > ", offset, cur))
		if !ok || input == "." {
			return nil
		}
		if input == "" {
			offset++
			continue
		}
		val, err := parseHex(input)
		if err != nil || val > 0xFF {
			return fmt.Errorf("invalid byte: %s", input)
		}
		if err := s.Machine.Mem.WriteByte(offset, byte(val)); err != nil {
			return fmt.Errorf("modify: %w", err)
		}
		offset++
	}
}

// cmdRegisters prints the register file, flags, and hidden registers.
func (s *Shell) cmdRegisters() {
	r := s.Machine.Regs
	for i := 0; i < 13; i++ {
		fmt.Fprintf(s.out, "R%-2d=%08X  ", i, r.Get(i))
		if (i+1)%4 == 0 {
			fmt.Fprintln(s.out)
		}
	}
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "SP =%08X  LR =%08X  PC =%08X\n", r.GetSP(), r.GetLR(), r.GetPC())
	fmt.Fprintf(s.out, "MAR=%08X  MBR=%08X  IR =%08X  ALU=%08X  CIR=%04X\n",
		r.MAR, r.MBR, r.IR, r.ALU, r.CIR)
	f := s.Machine.Flags
	fmt.Fprintf(s.out, "Z=%v S=%v C=%v STOP=%v IR_ACTIVE=%v\n", f.Z, f.S, f.C, f.Stop, f.IRActive)
}

// cmdTrace executes exactly one instruction cycle and prints registers.
func (s *Shell) cmdTrace() error {
	if err := s.Machine.Step(); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	s.cmdRegisters()
	return nil
}

// cmdWrite writes a byte prefix of memory to a file.
func (s *Shell) cmdWrite() error {
	path, ok := s.prompt("filename: ")
	if !ok || path == "" {
		return nil
	}
	countStr, ok := s.prompt("byte count (hex): ")
	if !ok {
		return nil
	}
	count, err := parseHex(countStr)
	if err != nil {
		return fmt.Errorf("invalid byte count: %w", err)
	}
	n, err := image.Save(s.Sandbox, path, s.Machine.Mem, int(count))
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(s.out, "wrote %d bytes to %s\n", n, path)
	return nil
}

// cmdReset clears registers, flags, and hidden registers; memory survives.
func (s *Shell) cmdReset() {
	s.Machine.Reset()
	fmt.Fprintln(s.out, "reset")
}

// cmdHelp lists the command surface.
func (s *Shell) cmdHelp() {
	fmt.Fprintln(s.out, `commands:
  d  dump a memory region
  g  run to STOP (or the cycle limit)
  l  load a file into memory
  m  modify memory byte by byte
  q  quit
  r  print registers
  t  single-step one instruction cycle
  v  launch the terminal viewer
  w  write a memory prefix to a file
  z  reset registers and flags (memory preserved)
  h, ?  this help`)
}

func parseHex(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
