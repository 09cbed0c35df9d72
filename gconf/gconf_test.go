package gconf

import (
	"encoding/json"
	"testing"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/store"
)

type testConfig struct {
	Owner string `json:"owner"`
}

func (c *testConfig) Validate() error {
	if c.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func (c *testConfig) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *testConfig) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func TestSaveAndLoad(t *testing.T) {
	db := store.MemStore()

	src := testConfig{Owner: "alice"}
	if err := Save(db, "testpkg", &src); err != nil {
		t.Fatalf("cannot save configuration: %+v", err)
	}

	var dst testConfig
	if err := Load(db, "testpkg", &dst); err != nil {
		t.Fatalf("cannot load configuration: %+v", err)
	}
	if dst.Owner != src.Owner {
		t.Fatalf("want %q owner, got %q", src.Owner, dst.Owner)
	}
}

func TestSaveInvalidConfiguration(t *testing.T) {
	db := store.MemStore()
	err := Save(db, "testpkg", &testConfig{})
	if !errors.ErrEmpty.Is(err) {
		t.Fatalf("want an empty error, got %+v", err)
	}
}

func TestLoadMissingConfiguration(t *testing.T) {
	db := store.MemStore()
	var dst testConfig
	if err := Load(db, "testpkg", &dst); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := payinbox.Options{
		"conf": json.RawMessage(`{"testpkg": {"owner": "bob"}}`),
	}
	var conf testConfig
	if err := InitConfig(db, opts, "testpkg", &conf); err != nil {
		t.Fatalf("cannot initialize configuration: %+v", err)
	}

	var loaded testConfig
	if err := Load(db, "testpkg", &loaded); err != nil {
		t.Fatalf("cannot load configuration: %+v", err)
	}
	if loaded.Owner != "bob" {
		t.Fatalf("unexpected owner: %q", loaded.Owner)
	}
}

func TestInitConfigMissingPackage(t *testing.T) {
	db := store.MemStore()
	opts := payinbox.Options{
		"conf": json.RawMessage(`{"otherpkg": {"owner": "bob"}}`),
	}
	var conf testConfig
	if err := InitConfig(db, opts, "testpkg", &conf); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}
