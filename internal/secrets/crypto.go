package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

// Envelope layout: salt, then nonce, then the GCM ciphertext and tag.
// An envelope is self-contained: opening it needs only the password.
const (
	SaltSize  = 16
	NonceSize = 12
	KeySize   = 32 // AES-256

	// Iterations is the PBKDF2 work factor. Changing it breaks every
	// existing envelope, so it is fixed.
	Iterations = 100_000

	headerSize = SaltSize + NonceSize
)

// DeriveKey derives an AES-256 key from a password and salt using PBKDF2
// with HMAC-SHA-256. Deterministic: the same password and salt always
// yield the same key.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeySize, sha256.New)
}

// Seal encrypts plaintext with a key derived from password. Every call
// draws a fresh random salt and nonce, so sealing the same plaintext
// twice never produces the same envelope.
func Seal(password string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := DeriveKey(password, salt)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrEncryptFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrEncryptFailed, err)
	}

	envelope := make([]byte, 0, headerSize+len(plaintext)+gcm.Overhead())
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	return gcm.Seal(envelope, nonce, plaintext, nil), nil
}

// Open decrypts an envelope produced by Seal. Returns ErrInvalidEnvelope
// when the data cannot contain a salt and nonce, and ErrDecryptionFailed
// when tag verification fails (wrong password, or tampered data).
func Open(password string, envelope []byte) ([]byte, error) {
	if len(envelope) < headerSize {
		return nil, terrors.ErrInvalidEnvelope
	}

	salt := envelope[:SaltSize]
	nonce := envelope[SaltSize:headerSize]
	ciphertext := envelope[headerSize:]

	key := DeriveKey(password, salt)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrDecryptionFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrDecryptionFailed, err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, terrors.ErrDecryptionFailed
	}
	return plaintext, nil
}

// zeroBytes overwrites key material once it is no longer needed.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
