package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects configuration documents at rest, such as a key registry
// file, with a passphrase.
//
// Sealed blob layout (base64, standard encoding):
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ AES-256-GCM ciphertext
type Sealer interface {
	// Seal encrypts plaintext with a key derived from passphrase.
	Seal(plaintext []byte, passphrase string) (string, error)

	// Open reverses Seal. A wrong passphrase or a corrupted blob fails the
	// GCM authentication check.
	Open(sealed string, passphrase string) ([]byte, error)
}
