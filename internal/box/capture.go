package box

// Capturer routes every pointer move/up to the controller while a session is open,
// even after the pointer leaves the box. Capture returns the matching release.
type Capturer interface {
	Capture() (release func())
}

// CaptureFunc adapts a function to Capturer.
type CaptureFunc func() (release func())

// Capture calls f.
func (f CaptureFunc) Capture() func() {
	return f()
}

type noCapture struct{}

func (noCapture) Capture() func() { return func() {} }
