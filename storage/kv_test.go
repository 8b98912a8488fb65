package storage

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *KVStore {
	t.Helper()
	store, err := NewKVStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewKVStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKVStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	v, ok, err := store.Get("absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get(absent) = %q, %v; want \"\", false", v, ok)
	}
}

func TestKVStoreSetOverwrites(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		value string
	}{
		{"first write", `{"providerId":"ollama"}`},
		{"overwrite", `{"providerId":"openai"}`},
		{"empty value", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set("settings", tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := store.Get("settings")
			if err != nil || !ok {
				t.Fatalf("Get: %q %v %v", got, ok, err)
			}
			if got != tt.value {
				t.Errorf("Get = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestKVStoreDeleteAndKeys(t *testing.T) {
	store := newTestStore(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := store.Set(k, k); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := store.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys() = %v, want [a c]", keys)
	}
}

func TestKVStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	store, err := NewKVStore(path)
	if err != nil {
		t.Fatalf("NewKVStore: %v", err)
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := NewKVStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get("k"); !ok || v != "v" {
		t.Errorf("after reopen Get = %q, %v", v, ok)
	}
}
