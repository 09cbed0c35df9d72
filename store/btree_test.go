package store

import (
	"bytes"
	"testing"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("address"), []byte("balance")

	if db.Has(k) {
		t.Fatal("empty store must not have the key")
	}
	db.Set(k, v)
	if !db.Has(k) {
		t.Fatal("key must exist after set")
	}
	if got := db.Get(k); !bytes.Equal(got, v) {
		t.Fatalf("want %q, got %q", v, got)
	}

	db.Delete(k)
	if db.Has(k) {
		t.Fatal("key must not exist after delete")
	}
	if got := db.Get(k); got != nil {
		t.Fatalf("want nil, got %q", got)
	}
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))

	// Pending changes are visible in the cache only.
	if db.Has([]byte("b")) {
		t.Fatal("uncommitted write leaked to the backing store")
	}
	if !db.Has([]byte("a")) {
		t.Fatal("uncommitted delete leaked to the backing store")
	}
	if !cache.Has([]byte("b")) {
		t.Fatal("cache must see its own write")
	}
	if cache.Has([]byte("a")) {
		t.Fatal("cache must see its own delete")
	}

	cache.Write()

	if !db.Has([]byte("b")) {
		t.Fatal("committed write missing")
	}
	if db.Has([]byte("a")) {
		t.Fatal("committed delete missing")
	}
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	cache.Discard()

	if db.Has([]byte("b")) {
		t.Fatal("discarded write must not be applied")
	}
	if got := db.Get([]byte("a")); !bytes.Equal(got, []byte("1")) {
		t.Fatalf("discarded delete must not be applied, got %q", got)
	}
}

func TestCacheWrapNested(t *testing.T) {
	db := MemStore()

	outer := db.CacheWrap()
	outer.Set([]byte("a"), []byte("1"))

	inner := outer.CacheWrap()
	inner.Set([]byte("b"), []byte("2"))

	// Inner sees through to outer writes.
	if got := inner.Get([]byte("a")); !bytes.Equal(got, []byte("1")) {
		t.Fatalf("inner cache must read outer value, got %q", got)
	}

	inner.Write()
	outer.Write()

	if got := db.Get([]byte("b")); !bytes.Equal(got, []byte("2")) {
		t.Fatalf("nested commit lost a write, got %q", got)
	}
}
