package watchface

type linkState uint8

const (
	linkUnknown linkState = iota
	linkConnected
	linkDisconnected
)

func (s linkState) String() string {
	switch s {
	case linkConnected:
		return "connected"
	case linkDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// BluetoothIndicator tracks the phone link for the disconnected icon.
// The zero value is in the unknown state.
type BluetoothIndicator struct {
	state linkState
}

// Apply records the link state. The icon is hidden while connected, and pulse is
// set only on a transition into disconnected.
func (b *BluetoothIndicator) Apply(connected bool) (hidden, pulse bool) {
	if connected {
		b.state = linkConnected
		return true, false
	}
	pulse = b.state != linkDisconnected
	b.state = linkDisconnected
	return false, pulse
}

func (b *BluetoothIndicator) Connected() bool { return b.state == linkConnected }

func (b *BluetoothIndicator) reset() { b.state = linkUnknown }
