package xlsxstyle

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func testStyleStore(c *qt.C, store StyleStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "0123456789abcdef")
	c.Assert(errors.Is(err, ErrSnapshotNotFound), qt.IsTrue)

	c.Assert(store.Put(ctx, "0123456789abcdef", []byte("first")), qt.IsNil)
	c.Assert(store.Put(ctx, "fedcba9876543210", []byte("second")), qt.IsNil)
	got, err := store.Get(ctx, "0123456789abcdef")
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "first")

	c.Assert(store.Put(ctx, "0123456789abcdef", []byte("replaced")), qt.IsNil)
	got, err = store.Get(ctx, "0123456789abcdef")
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "replaced")

	keys, err := store.Keys(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"0123456789abcdef", "fedcba9876543210"})

	c.Assert(store.Delete(ctx, "0123456789abcdef"), qt.IsNil)
	c.Assert(store.Delete(ctx, "0123456789abcdef"), qt.IsNil)
	_, err = store.Get(ctx, "0123456789abcdef")
	c.Assert(errors.Is(err, ErrSnapshotNotFound), qt.IsTrue)
	keys, err = store.Keys(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"fedcba9876543210"})

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	c.Assert(store.Put(cancelled, "0123456789abcdef", []byte("x")), qt.ErrorIs, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	c := qt.New(t)
	store := NewMemoryStore()
	defer store.Close()
	testStyleStore(c, store)

	c.Run("values are copied", func(c *qt.C) {
		ctx := context.Background()
		data := []byte("abc")
		c.Assert(store.Put(ctx, "k", data), qt.IsNil)
		data[0] = 'x'
		got, err := store.Get(ctx, "k")
		c.Assert(err, qt.IsNil)
		c.Assert(string(got), qt.Equals, "abc")
	})
}

func TestDiskvStore(t *testing.T) {
	c := qt.New(t)

	c.Run("needs a base path", func(c *qt.C) {
		_, err := NewDiskvStore(DiskvStoreOption{})
		c.Assert(err, qt.ErrorMatches, "disk store needs a base path")
	})

	c.Run("store", func(c *qt.C) {
		store, err := NewDiskvStore(DiskvStoreOption{BasePath: c.TempDir(), CacheSizeMax: 1 << 20})
		c.Assert(err, qt.IsNil)
		defer store.Close()
		testStyleStore(c, store)

		c.Assert(store.Purge(), qt.IsNil)
		keys, err := store.Keys(context.Background())
		c.Assert(err, qt.IsNil)
		c.Assert(keys, qt.HasLen, 0)
	})

	c.Run("snapshotPath", func(c *qt.C) {
		c.Assert(snapshotPath("abcdef"), qt.DeepEquals, []string{"ab", "cd"})
		c.Assert(snapshotPath("abc"), qt.DeepEquals, []string{})
	})
}
