package auth

// Sealer protects credentials persisted on the device.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
	Name() string
}

type Options struct {
	// Info binds derived keys to a purpose; defaults to "iowasensors-device-store".
	Info string
}
