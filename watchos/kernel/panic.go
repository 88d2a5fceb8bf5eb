package kernel

import "fmt"

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	// Event is the event being handled, zero while rendering or loading.
	Event EventKind
	Value any
	Stack []byte
}

func (p PanicInfo) String() string {
	if p.Event == 0 {
		return fmt.Sprintf("panic: %v", p.Value)
	}
	return fmt.Sprintf("panic in %s handler: %v", p.Event, p.Value)
}

// InPanicMode reports whether the kernel has stopped dispatching after a panic.
func (k *Kernel) InPanicMode() bool { return k.panicked }

// SetPanicHandler installs the handler called on the first panic. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) { k.onPanic = fn }

// Fault stops the kernel as if a callback had panicked with v.
func (k *Kernel) Fault(v any) {
	k.triggerPanic(PanicInfo{Value: v})
}

// recoverPanic must be deferred directly.
func (k *Kernel) recoverPanic(ev EventKind) {
	if r := recover(); r != nil {
		k.triggerPanic(PanicInfo{Event: ev, Value: r})
	}
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	if k.panicked {
		return
	}
	k.panicked = true
	info.Stack = captureStack()
	k.log.Warnf("%s", info)
	if k.onPanic != nil {
		k.onPanic(info)
	}
}
