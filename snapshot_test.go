package xlsxstyle

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func styledFile(c *qt.C) *File {
	f, sh := loadSharedFormat(c)
	c.Assert(cell(c, sh, "A1").SetXfIndex(3), qt.IsNil)
	c.Assert(cell(c, sh, "B7").Style().Font().SetBold(true), qt.IsNil)
	other, err := f.AddSheet("Totals")
	c.Assert(err, qt.IsNil)
	c.Assert(cell(c, other, "C2").Style().NumberFormat().SetFormat("0.0%"), qt.IsNil)
	_, err = f.AddSheet("Empty")
	c.Assert(err, qt.IsNil)
	return f
}

func TestSnapshot(t *testing.T) {
	c := qt.New(t)

	c.Run("round trip", func(c *qt.C) {
		f := styledFile(c)
		data, err := f.MarshalSnapshot()
		c.Assert(err, qt.IsNil)

		back, err := UnmarshalSnapshot(data)
		c.Assert(err, qt.IsNil)
		c.Assert(back.ID, qt.Equals, f.ID)
		c.Assert(back.Styles().CellXfs.Len(), qt.Equals, f.Styles().CellXfs.Len())
		c.Assert(back.Styles().Fonts.Len(), qt.Equals, f.Styles().Fonts.Len())

		names := make([]string, 0, 3)
		for _, sh := range back.Sheets() {
			names = append(names, sh.Name)
		}
		c.Assert(names, qt.DeepEquals, []string{"Sheet1", "Totals", "Empty"})

		sh, ok := back.Sheet("Sheet1")
		c.Assert(ok, qt.IsTrue)
		c.Assert(sh.StyledCells(), qt.DeepEquals, []CellRef{{Col: 1, Row: 1}, {Col: 2, Row: 7}})
		c.Assert(cell(c, sh, "A1").XfIndex(), qt.Equals, 3)
		c.Assert(cell(c, sh, "B7").Style().Font().Bold(), qt.IsTrue)

		totals, _ := back.Sheet("Totals")
		c.Assert(cell(c, totals, "C2").Style().NumberFormat().FormatValue(0.125), qt.Equals, "12.5%")
	})

	c.Run("corrupted payload", func(c *qt.C) {
		data, err := styledFile(c).MarshalSnapshot()
		c.Assert(err, qt.IsNil)
		data[len(data)-1] ^= 0xff
		_, err = UnmarshalSnapshot(data)
		c.Assert(err, qt.Equals, ErrChecksumMismatch)

		_, err = UnmarshalSnapshot(data[:4])
		c.Assert(err, qt.Equals, ErrChecksumMismatch)
	})
}

func TestSaveAndOpen(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("memory", func(c *qt.C) {
		store := NewMemoryStore()
		f := NewFile(UseStore(store))
		sh, _ := f.AddSheet("S")
		c.Assert(cell(c, sh, "D4").Style().SetWrapText(true), qt.IsNil)

		key, err := f.Save(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(key, qt.Equals, f.ID)

		back, err := Open(ctx, store, key)
		c.Assert(err, qt.IsNil)
		sh, ok := back.Sheet("S")
		c.Assert(ok, qt.IsTrue)
		c.Assert(cell(c, sh, "D4").Style().WrapText(), qt.IsTrue)

		// the restored file saves back to the same store
		c.Assert(cell(c, sh, "D5").Style().SetIndent(2), qt.IsNil)
		_, err = back.Save(ctx)
		c.Assert(err, qt.IsNil)
		keys, err := store.Keys(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(keys, qt.DeepEquals, []string{f.ID})
	})

	c.Run("disk", func(c *qt.C) {
		dir := c.TempDir()
		f := NewFile(UseDiskvStore(DiskvStoreOption{BasePath: dir}))
		c.Assert(f.store, qt.Not(qt.IsNil))
		defer f.Close()
		sh, _ := f.AddSheet("S")
		c.Assert(cell(c, sh, "A1").Style().Fill().SetPatternType(PatternSolid), qt.IsNil)
		key, err := f.Save(ctx)
		c.Assert(err, qt.IsNil)

		store, err := NewDiskvStore(DiskvStoreOption{BasePath: dir})
		c.Assert(err, qt.IsNil)
		back, err := Open(ctx, store, key)
		c.Assert(err, qt.IsNil)
		sh, _ = back.Sheet("S")
		c.Assert(cell(c, sh, "A1").Style().Fill().PatternType(), qt.Equals, PatternSolid)
	})

	c.Run("no store", func(c *qt.C) {
		_, err := NewFile().Save(ctx)
		c.Assert(err, qt.ErrorMatches, "no store configured")
	})

	c.Run("missing key", func(c *qt.C) {
		_, err := Open(ctx, NewMemoryStore(), "nope")
		c.Assert(errors.Is(err, ErrSnapshotNotFound), qt.IsTrue)
	})

	c.Run("OpenConfig", func(c *qt.C) {
		cfg := DefaultConfig()
		cfg.Store.Kind = "disk"
		cfg.Store.Path = c.TempDir()
		f := NewFile(WithConfig(cfg))
		c.Assert(f.store, qt.Not(qt.IsNil))
		key, err := f.Save(ctx)
		c.Assert(err, qt.IsNil)

		back, err := OpenConfig(ctx, cfg, key)
		c.Assert(err, qt.IsNil)
		defer back.Close()
		c.Assert(back.ID, qt.Equals, key)
		c.Assert(back.DefaultRowHeight(), qt.Equals, 15.0)

		_, err = OpenConfig(ctx, cfg, "0000missing")
		c.Assert(errors.Is(err, ErrSnapshotNotFound), qt.IsTrue)
	})

	c.Run("config store", func(c *qt.C) {
		cfg := DefaultConfig()
		store := NewMemoryStore()
		f := NewFile(WithConfig(cfg), UseStore(store))
		c.Assert(f.store, qt.Equals, StyleStore(store))

		f = NewFile(WithConfig(cfg))
		_, ok := f.store.(*MemoryStore)
		c.Assert(ok, qt.IsTrue)

		cfg.Store.Kind = "tape"
		_, err := NewFile(WithConfig(cfg)).Save(ctx)
		c.Assert(err, qt.ErrorMatches, "no store configured")
	})

	c.Run("unset gradient stops", func(c *qt.C) {
		f := NewFile()
		sh, _ := f.AddSheet("S")
		g := cell(c, sh, "A1").Style().Fill().Gradient()
		c.Assert(g.SetDegree(90), qt.IsNil)
		stop := g.Color1().Resolve()

		data, err := f.MarshalSnapshot()
		c.Assert(err, qt.IsNil)
		back, err := UnmarshalSnapshot(data)
		c.Assert(err, qt.IsNil)
		c.Assert(canonicalIDs(back.Styles().Fills), qt.DeepEquals, canonicalIDs(f.Styles().Fills))

		sh, _ = back.Sheet("S")
		g = cell(c, sh, "A1").Style().Fill().Gradient()
		c.Assert(g.Color1().Auto(), qt.IsTrue)
		c.Assert(g.Color1().Resolve(), qt.Equals, stop)
		c.Assert(g.Color2().Resolve(), qt.Equals, stop)

		// the restored fill is the one built in memory
		fills := back.Styles().Fills.Len()
		other, _ := back.AddSheet("T")
		c.Assert(cell(c, other, "B2").Style().Fill().Gradient().SetDegree(90), qt.IsNil)
		c.Assert(back.Styles().Fills.Len(), qt.Equals, fills)
	})
}
