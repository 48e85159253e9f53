package auth

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidSealedValue = errors.New("invalid sealed value")

const defaultInfo = "iowasensors-device-store"

// AEADSealer seals values with XChaCha20-Poly1305 under a key derived from the
// device secret. Output layout is nonce || ciphertext.
type AEADSealer struct {
	aead cipher.AEAD
}

// NewAEADSealer derives a sealing key from secret.
func NewAEADSealer(secret string, opts Options) (*AEADSealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("device secret must not be empty")
	}
	info := opts.Info
	if info == "" {
		info = defaultInfo
	}

	key := make([]byte, chacha20poly1305.KeySize)
	h := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	return &AEADSealer{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (s *AEADSealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a value produced by Seal.
func (s *AEADSealer) Open(sealed []byte) ([]byte, error) {
	ns := s.aead.NonceSize()
	if len(sealed) < ns+s.aead.Overhead() {
		return nil, ErrInvalidSealedValue
	}
	plaintext, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, ErrInvalidSealedValue
	}
	return plaintext, nil
}

func (s *AEADSealer) Name() string {
	return "xchacha20poly1305"
}
