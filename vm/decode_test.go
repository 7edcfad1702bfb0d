package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d-mariano/dpu/vm"
)

func TestDecode_Stop(t *testing.T) {
	inst := vm.Decode(0xFFFF)
	assert.Equal(t, vm.ClassStop, inst.Class)
}

func TestDecode_DataProcessing(t *testing.T) {
	// class bits 010000, opcode=ADD(0100), rn=3, rd=5
	word := uint16(0x4000) | uint16(vm.OpADD)<<6 | uint16(3)<<3 | uint16(5)
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassDataProcessing, inst.Class)
	assert.Equal(t, vm.OpADD, inst.DPOpcode)
	assert.Equal(t, 3, inst.Rn)
	assert.Equal(t, 5, inst.Rd)
}

func TestDecode_LoadStore(t *testing.T) {
	word := uint16(0x6000) | 1<<11 | 1<<10 | uint16(2)<<3 | uint16(1)
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassLoadStore, inst.Class)
	assert.True(t, inst.Load)
	assert.True(t, inst.Byte)
	assert.Equal(t, 2, inst.Rn)
	assert.Equal(t, 1, inst.Rd)
}

func TestDecode_Immediate(t *testing.T) {
	word := uint16(0x2000) | uint16(vm.ImmADD)<<11 | uint16(4)<<8 | uint16(200)
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassImmediate, inst.Class)
	assert.Equal(t, vm.ImmADD, inst.ImmOpcode)
	assert.Equal(t, 4, inst.Rd)
	assert.Equal(t, uint32(200), inst.Imm8)
}

func TestDecode_CondBranch_NegativeOffset(t *testing.T) {
	word := uint16(0xD000) | uint16(vm.CondEQ)<<8 | uint16(uint8(int8(-4)))
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassCondBranch, inst.Class)
	assert.Equal(t, vm.CondEQ, inst.Cond)
	assert.Equal(t, int32(-4), inst.Offset)
}

func TestDecode_PushPull(t *testing.T) {
	word := uint16(0xB800) | 1<<10 | 1<<9 | 1<<8 | uint16(0x81)
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassPushPull, inst.Class)
	assert.True(t, inst.PushPullLoad)
	assert.True(t, inst.LinkOrPC)
	assert.True(t, inst.HighBank)
	assert.Equal(t, uint8(0x81), inst.RegList)
}

func TestDecode_Branch(t *testing.T) {
	word := uint16(0xE000) | 1<<11 | uint16(0x123)
	inst := vm.Decode(word)
	assert.Equal(t, vm.ClassBranch, inst.Class)
	assert.True(t, inst.Link)
	assert.Equal(t, uint32(0x123), inst.Target)
}
