package utils

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	plaintext := []byte("How much did I spend on food last month?")

	ciphertext, err := Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if ciphertext == string(plaintext) {
		t.Fatal("ciphertext must differ from plaintext")
	}

	decrypted, err := Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("round trip mismatch: %q", decrypted)
	}
}

func TestEncryptRequiresKey(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "too-short")

	if _, err := Encrypt([]byte("data")); err == nil {
		t.Fatal("short key must be rejected")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	ciphertext, err := Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	tampered := "A" + ciphertext[1:]
	if _, err := Decrypt(tampered); err == nil {
		t.Fatal("tampered ciphertext must be rejected")
	}
}
