package service

import (
	"testing"
	"time"
)

func TestMemoryRefreshTokenStore(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-1", "user-1", time.Hour); err != nil {
		t.Fatalf("store: %v", err)
	}
	ok, err := store.Exists("jti-1")
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v; want true", ok, err)
	}

	if err := store.Revoke("jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = store.Exists("jti-1")
	if err != nil || ok {
		t.Errorf("exists after revoke = %v, %v; want false", ok, err)
	}
}

func TestMemoryRefreshTokenStoreExpiry(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-1", "user-1", -time.Second); err != nil {
		t.Fatal(err)
	}
	ok, err := store.Exists("jti-1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expired jti should not exist")
	}
}

func TestMemoryRefreshTokenStoreUnknown(t *testing.T) {
	store := NewMemoryRefreshTokenStore()
	ok, err := store.Exists("never-stored")
	if err != nil || ok {
		t.Errorf("exists = %v, %v; want false, nil", ok, err)
	}
	if err := store.Revoke("never-stored"); err != nil {
		t.Errorf("revoking unknown jti should be a no-op: %v", err)
	}
}
