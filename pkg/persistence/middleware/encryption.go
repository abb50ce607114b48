package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/casetree/pkg/ports"
	"github.com/aretw0/casetree/pkg/tree"
)

const (
	// EnvelopeTag is the root element of an encrypted case file.
	EnvelopeTag    = "encrypted_case"
	envelopeScheme = "aes-256-gcm"
)

// ErrNotEncrypted is returned by Load when the stored case is plain XML and plaintext is not allowed.
var ErrNotEncrypted = errors.New("case is not encrypted")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables key rotation: cases are re-encrypted with ActiveKey on their next save.
	FallbackKeys [][]byte

	// AllowPlaintext lets Load return unencrypted cases as they are, for stores being migrated.
	AllowPlaintext bool
}

type encryptionMiddleware struct {
	next   ports.CaseStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts case files using AES-GCM. The ciphertext is wrapped
// in a one-element XML envelope so stored files stay well-formed.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	return func(next ports.CaseStore) ports.CaseStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, name string, data []byte) error {
	ciphertext, err := encrypt(data, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt case: %w", err)
	}

	envelope := tree.New(EnvelopeTag, tree.A("scheme", envelopeScheme))
	envelope.SetText(base64.StdEncoding.EncodeToString(ciphertext))
	sealed, err := tree.Serialize(envelope)
	if err != nil {
		return err
	}
	return m.next.Save(ctx, name, sealed)
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) ([]byte, error) {
	sealed, err := m.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	envelope, err := tree.Parse(sealed)
	if err != nil || envelope.Tag != EnvelopeTag {
		if m.config.AllowPlaintext {
			return sealed, nil
		}
		return nil, fmt.Errorf("%s: %w", name, ErrNotEncrypted)
	}
	if scheme, _ := envelope.Attr("scheme"); scheme != envelopeScheme {
		return nil, fmt.Errorf("%s: unsupported encryption scheme %q", name, scheme)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt case: %w", err)
	}
	return plainText, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
