package scene

// Key is a host-independent input identifier. The host maps its own key
// codes onto these.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyDown
	KeyUp
	KeyYawLeft
	KeyYawRight
	KeyPitchUp
	KeyPitchDown
	KeySpawn
)

// KeySet is the set of currently held keys.
type KeySet map[Key]bool

func (k KeySet) axis(neg, pos Key) float32 {
	var v float32
	if k[neg] {
		v--
	}
	if k[pos] {
		v++
	}
	return v
}
