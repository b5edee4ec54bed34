package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// TokenCipher encrypts platform tokens before they reach the database.
type TokenCipher interface {
	Encrypt(plainText string) (string, error)
	Decrypt(cipherText string) (string, error)
}

type aesGCMCipher struct {
	gcm cipher.AEAD
}

// NewTokenCipher builds an AES-256-GCM cipher from a hex encoded 32 byte key.
// An empty key yields a pass-through cipher.
func NewTokenCipher(keyHex string) (TokenCipher, error) {
	if keyHex == "" {
		return plainCipher{}, nil
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования ключа: %w", err)
	}
	if len(key) != 32 {
		return nil, errors.New("ключ шифрования должен быть 32 байта")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &aesGCMCipher{gcm: gcm}, nil
}

// Encrypt returns base64(nonce + ciphertext + tag).
func (c *aesGCMCipher) Encrypt(plainText string) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	sealed := c.gcm.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *aesGCMCipher) Decrypt(cipherText string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования токена: %w", err)
	}

	nonceSize := c.gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.New("зашифрованный токен слишком короткий")
	}

	plain, err := c.gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("ошибка расшифровки токена: %w", err)
	}

	return string(plain), nil
}

type plainCipher struct{}

func (plainCipher) Encrypt(plainText string) (string, error) { return plainText, nil }

func (plainCipher) Decrypt(cipherText string) (string, error) { return cipherText, nil }
