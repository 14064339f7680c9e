package utils

import (
	"testing"
	"time"
)

func TestEncodeDecodeJWT(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := EncodeJWT("ann@example.com", time.Minute, secret)
	if err != nil {
		t.Fatalf("EncodeJWT() error: %v", err)
	}

	claims, err := DecodeJWT(token, secret)
	if err != nil {
		t.Fatalf("DecodeJWT() error: %v", err)
	}
	if got := EmailFromClaims(claims); got != "ann@example.com" {
		t.Fatalf("EmailFromClaims() = %q", got)
	}

	if _, err := DecodeJWT(token, []byte("other")); err == nil {
		t.Fatalf("DecodeJWT() accepted a token signed with another secret")
	}
}

func TestDecodeJWT_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := EncodeJWT("ann@example.com", -time.Minute, secret)
	if err != nil {
		t.Fatalf("EncodeJWT() error: %v", err)
	}
	if _, err := DecodeJWT(token, secret); err == nil {
		t.Fatalf("DecodeJWT() accepted an expired token")
	}
}
