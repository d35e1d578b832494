//go:build windows

package clipboard

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"clipbridge/pkg/cliptypes"
)

const (
	platformName       = "win32"
	platformAllFormats = true

	gmemMoveable = 0x0002
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
)

// win32Native talks to user32 directly. Clipboard ownership is tied to
// the calling thread, so the goroutine stays locked to its OS thread from
// Open until Close.
type win32Native struct{}

func newPlatformNative() (Native, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("load user32: %w", err)
	}
	return win32Native{}, nil
}

func (win32Native) Open() error {
	runtime.LockOSThread()
	if r, _, err := procOpenClipboard.Call(0); r == 0 {
		runtime.UnlockOSThread()
		return fmt.Errorf("%w: OpenClipboard: %v", ErrUnavailable, err)
	}
	return nil
}

func (win32Native) Close() error {
	defer runtime.UnlockOSThread()
	if r, _, err := procCloseClipboard.Call(); r == 0 {
		return fmt.Errorf("CloseClipboard: %w", err)
	}
	return nil
}

func (win32Native) Empty() error {
	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

// SetData copies data into a movable global block and hands it to the
// clipboard. The system owns the block once SetClipboardData succeeds.
func (win32Native) SetData(format cliptypes.Format, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("SetClipboardData(%s): empty payload", format)
	}
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return fmt.Errorf("GlobalAlloc(%d): %w", len(data), err)
	}
	p, err := globalLock(h)
	if err != nil {
		procGlobalFree.Call(h)
		return err
	}
	copy(unsafe.Slice((*byte)(p), len(data)), data)
	procGlobalUnlock.Call(h)

	if r, _, err := procSetClipboardData.Call(uintptr(format), h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("SetClipboardData(%s): %w", format, err)
	}
	return nil
}

// Data copies the clipboard's global block for format. The block still
// belongs to the clipboard and is only read.
func (win32Native) Data(format cliptypes.Format) ([]byte, error) {
	h, _, err := procGetClipboardData.Call(uintptr(format))
	if h == 0 {
		return nil, fmt.Errorf("%w: GetClipboardData(%s): %v", ErrFormatAbsent, format, err)
	}
	size, _, err := procGlobalSize.Call(h)
	if size == 0 {
		return nil, fmt.Errorf("GlobalSize: %w", err)
	}
	p, err := globalLock(h)
	if err != nil {
		return nil, err
	}
	defer procGlobalUnlock.Call(h)

	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(p), size))
	return out, nil
}

// globalLock pins the global block h and returns its address. The memory
// belongs to the system heap, not the Go heap; it stays valid until
// GlobalUnlock.
func globalLock(h uintptr) (unsafe.Pointer, error) {
	addr, _, err := procGlobalLock.Call(h)
	if addr == 0 {
		return nil, fmt.Errorf("GlobalLock: %w", err)
	}
	// Reinterpret through memory so the address is never converted from
	// a uintptr expression.
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr)), nil
}

func (win32Native) IsAvailable(format cliptypes.Format) bool {
	r, _, _ := procIsClipboardFormatAvailable.Call(uintptr(format))
	return r != 0
}
