// Package pty runs region commands under a pseudo-terminal so they emit the
// same colored output they would in a real terminal.
package pty

import (
	"io"
	"math"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// SizeFor converts a region's cell size to a PTY size. Dimensions are
// clamped to at least one cell.
func SizeFor(width, height int) Size {
	return Size{Rows: clampDim(height), Cols: clampDim(width)}
}

func clampDim(n int) uint16 {
	switch {
	case n < 1:
		return 1
	case n > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(n)
}

func (s Size) winsize() *pty.Winsize {
	return &pty.Winsize{Rows: s.Rows, Cols: s.Cols}
}

// Runner is the interface for spawning and resizing a PTY.
// Tests swap in a fake.
type Runner interface {
	Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. The returned closer is the PTY master; closing it
// hangs up the command.
func (CreackPTY) Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, size.winsize())
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Resize implements Runner. rwc must be the *os.File returned by Start;
// other types are ignored.
func (CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, size.winsize())
}
