package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx := context.Background()

	if err := s.Put(ctx, "runs/ledger.jsonl", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := s.Get(ctx, "runs/ledger.jsonl")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Got %q want %q", data, "hello")
	}

	keys, err := s.List(ctx, "runs")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "runs/ledger.jsonl" {
		t.Errorf("List = %v", keys)
	}
}

func TestLocalStoreListMissingPrefix(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	keys, err := s.List(context.Background(), "nope")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected empty list, got %v", keys)
	}
}

func TestLocalStoreGetMissingKey(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	_, err := s.Get(context.Background(), "ledger.jsonl")
	if !os.IsNotExist(err) {
		t.Errorf("Get on missing key = %v, want os.IsNotExist", err)
	}
}

func TestLocalStorePutCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root)

	if err := s.Put(context.Background(), "deep/nested/key", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "deep", "nested", "key")); err != nil {
		t.Errorf("blob file missing: %v", err)
	}
}
