// Package image loads and writes raw memory images: flat, headerless byte
// dumps of a DPU's address space.
package image

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d-mariano/dpu/vm"
)

// Sandbox confines Load and Save to files beneath a root directory. A zero
// value Sandbox imposes no restriction.
type Sandbox struct {
	Root string
}

// Resolve joins path against the sandbox root and rejects any path that
// would escape it.
func (s Sandbox) Resolve(path string) (string, error) {
	if s.Root == "" {
		return path, nil
	}
	full := filepath.Join(s.Root, path)
	rel, err := filepath.Rel(s.Root, full)
	if err != nil || rel == ".." || (len(rel) >= 3 && rel[:3] == "../") {
		return "", fmt.Errorf("path %q escapes sandbox root %q", path, s.Root)
	}
	return full, nil
}

// Load reads path and copies up to vm.MemSize bytes into mem starting at
// offset 0. It returns the number of bytes actually loaded; a file larger
// than memory is silently truncated and the caller is told how much made it
// in.
func Load(sb Sandbox, path string, mem *vm.Memory) (int, error) {
	resolved, err := sb.Resolve(path)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(resolved) // #nosec G304 -- path is sandbox-resolved
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return mem.LoadBytes(data), nil
}

// Save writes the first n bytes of mem to path. n greater than vm.MemSize is
// refused; n<=0 touches nothing on disk and reports zero bytes written.
func Save(sb Sandbox, path string, mem *vm.Memory, n int) (int, error) {
	if n > vm.MemSize {
		return 0, fmt.Errorf("save %s: requested %d bytes exceeds memory size %d", path, n, vm.MemSize)
	}
	if n <= 0 {
		return 0, nil
	}
	resolved, err := sb.Resolve(path)
	if err != nil {
		return 0, err
	}
	data := mem.Bytes(n)
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	return len(data), nil
}
