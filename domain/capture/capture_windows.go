//go:build windows

package capture

// Windows screen capture using per-frame GDI allocations.
// Each Grab/GrabSelection creates a temporary DIB, BitBlt's the virtual
// desktop into it and converts BGRA->RGBA into a heap-owned *image.RGBA.

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	srccopy           = 0x00CC0020
	dibRGBColors      = 0
	biRgb             = 0
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4).
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	gdi32                  = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procGetSystemMetrics   = user32.NewProc("GetSystemMetrics")
	procSetDpiAwareness    = user32.NewProc("SetProcessDpiAwarenessContext")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")

	dpiOnce sync.Once
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte // one RGBQUAD placeholder (unused for 32-bit)
}

// enableDPIAwareness makes GDI coordinates match physical pixels so the
// region picked on the Tk overlay lines up with what BitBlt copies.
func enableDPIAwareness() {
	dpiOnce.Do(func() {
		if procSetDpiAwareness.Find() != nil {
			return
		}
		_, _, _ = procSetDpiAwareness.Call(dpiAwarenessPerMonitorV2)
	})
}

func virtualScreen() image.Rectangle {
	x := int(getSystemMetric(smXVirtualScreen))
	y := int(getSystemMetric(smYVirtualScreen))
	w := int(getSystemMetric(smCxVirtualScreen))
	h := int(getSystemMetric(smCyVirtualScreen))
	return image.Rect(x, y, x+w, y+h)
}

// Grab captures the virtual desktop. The image bounds equal the desktop
// rectangle, which may start at negative coordinates.
func Grab() (*image.RGBA, error) {
	enableDPIAwareness()
	screen := virtualScreen()
	if screen.Empty() {
		return nil, fmt.Errorf("%w: invalid screen size %v", ErrUnsupported, screen)
	}
	img, err := captureRect(screen)
	if err != nil {
		return nil, err
	}
	// Report the virtual-desktop origin so callers can map overlay points back.
	img.Rect = screen
	return img, nil
}

// GrabSelection captures sel (clipped to screen bounds) and returns an RGBA image.
func GrabSelection(sel image.Rectangle) (*image.RGBA, error) {
	if sel.Empty() {
		return nil, ErrEmptyRegion
	}
	enableDPIAwareness()
	screen := virtualScreen()
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("%w: selection out of bounds sel=%v screen=%v", ErrCaptureFailure, sel, screen)
	}
	return captureRect(r)
}

// captureRect performs BitBlt into a top-down DIB section and copies the
// pixels out. The returned image has its origin at (0,0).
func captureRect(r image.Rectangle) (*image.RGBA, error) {
	w, h := r.Dx(), r.Dy()
	screenDC, _, err := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("%w: GetDC: %v", ErrUnsupported, err)
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, err := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("%w: CreateCompatibleDC: %v", ErrCaptureFailure, err)
	}
	defer procDeleteDC.Call(memDC)

	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h) // top-down
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRgb
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bitsPtr unsafe.Pointer
	bmp, _, err := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bitsPtr)), 0, 0)
	if bmp == 0 {
		return nil, fmt.Errorf("%w: CreateDIBSection: %v", ErrCaptureFailure, err)
	}
	defer procDeleteObject.Call(bmp)

	prev, _, err := procSelectObject.Call(memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) {
		return nil, fmt.Errorf("%w: SelectObject: %v", ErrCaptureFailure, err)
	}

	ok, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(w), uintptr(h), screenDC, uintptr(r.Min.X), uintptr(r.Min.Y), srccopy)
	if ok == 0 {
		return nil, fmt.Errorf("%w: BitBlt rect=%v: %v", ErrCaptureFailure, r, err)
	}

	pixLen := w * h * 4
	src := unsafe.Slice((*byte)(bitsPtr), pixLen)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < pixLen; i += 4 {
		dst.Pix[i+0] = src[i+2]
		dst.Pix[i+1] = src[i+1]
		dst.Pix[i+2] = src[i+0]
		dst.Pix[i+3] = 0xFF
	}
	return dst, nil
}

func getSystemMetric(idx int) int32 {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return int32(v)
}
