package image_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-mariano/dpu/image"
	"github.com/d-mariano/dpu/vm"
)

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	sb := image.Sandbox{Root: dir}

	mem := vm.NewMemory()
	for i := 0; i < 64; i++ {
		require.NoError(t, mem.WriteByte(uint32(i), byte(i)))
	}

	n, err := image.Save(sb, "out.bin", mem, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, n)

	loaded := vm.NewMemory()
	m, err := image.Load(sb, "out.bin", loaded)
	require.NoError(t, err)
	assert.Equal(t, 64, m)
	for i := 0; i < 64; i++ {
		b, _ := loaded.ReadByte(uint32(i))
		assert.Equal(t, byte(i), b)
	}
}

func TestLoad_TruncatesOversizedFile(t *testing.T) {
	dir := t.TempDir()
	sb := image.Sandbox{Root: dir}
	big := make([]byte, vm.MemSize+100)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.bin"), big, 0o600))

	mem := vm.NewMemory()
	n, err := image.Load(sb, "big.bin", mem)
	require.NoError(t, err)
	assert.Equal(t, vm.MemSize, n)
}

func TestSave_RefusesOversizedRequest(t *testing.T) {
	dir := t.TempDir()
	sb := image.Sandbox{Root: dir}
	mem := vm.NewMemory()
	_, err := image.Save(sb, "out.bin", mem, vm.MemSize+1)
	assert.Error(t, err)
}

func TestSandbox_RejectsEscape(t *testing.T) {
	dir := t.TempDir()
	sb := image.Sandbox{Root: dir}
	mem := vm.NewMemory()
	_, err := image.Save(sb, "../escape.bin", mem, 10)
	assert.Error(t, err)
}
