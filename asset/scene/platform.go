package scene

import (
	"errors"
	"runtime"
)

// Returned when the scene writer cannot run on the current platform.
var ErrUnsupportedPlatform = errors.New("scene: the renderer binding cannot be loaded inside the host application on this platform")

// Check that the writer may run on this platform. Embedded writers (running
// inside the host application process) are not supported on darwin.
func CheckPlatform(embedded bool) error {
	return checkPlatform(runtime.GOOS, embedded)
}

func checkPlatform(goos string, embedded bool) error {
	if embedded && goos == "darwin" {
		return ErrUnsupportedPlatform
	}
	return nil
}
