//go:build !integration

package security

import (
	"strings"
	"testing"
)

func TestEncryptionService_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, err := NewEncryptionService("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("NewEncryptionService: %v", err)
	}
	plain := "summarize my focus sessions for this week"
	ct, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ct == plain {
		t.Fatal("ciphertext must differ from plaintext")
	}
	got, err := svc.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plain {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestEncryptionService_RejectsBadKeyLength(t *testing.T) {
	t.Parallel()
	if _, err := NewEncryptionService("short"); err == nil {
		t.Fatal("expected error for a 5-byte key")
	}
}

func TestEncryptionService_DetectsTampering(t *testing.T) {
	t.Parallel()
	svc, _ := NewEncryptionService("0123456789abcdef")
	ct, _ := svc.Encrypt("hello")
	tampered := strings.Replace(ct, string(ct[len(ct)-2]), "A", 1)
	if tampered == ct {
		tampered = "B" + ct[1:]
	}
	if _, err := svc.Decrypt(tampered); err == nil {
		t.Fatal("expected authentication failure on tampered ciphertext")
	}
}
