package xlsxstyle

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	snapshotEncoder, _ = zstd.NewWriter(nil)
	snapshotDecoder, _ = zstd.NewReader(nil)
)

// checksumSize is the length of the xxhash64 prefix of a snapshot.
const checksumSize = 8

// snapshot is everything needed to restore the styling of a workbook.
type snapshot struct {
	ID     string          `json:"id"`
	Styles []byte          `json:"styles"`
	Sheets []sheetSnapshot `json:"sheets"`
}

type sheetSnapshot struct {
	Name  string         `json:"name"`
	Cells map[string]int `json:"cells,omitempty"`
}

// MarshalSnapshot encodes the stylesheet and every styled cell.  The result
// is zstd compressed and starts with a little-endian xxhash64 of the rest.
func (f *File) MarshalSnapshot() ([]byte, error) {
	styles, err := f.styles.MarshalBytes()
	if err != nil {
		return nil, err
	}
	snap := snapshot{ID: f.ID, Styles: styles}
	for _, sh := range f.Sheets() {
		ss := sheetSnapshot{Name: sh.Name, Cells: make(map[string]int)}
		for ref, index := range sh.styledCells() {
			ss.Cells[ref.String()] = index
		}
		snap.Sheets = append(snap.Sheets, ss)
	}
	raw, err := json.Marshal(&snap)
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	out := snapshotEncoder.EncodeAll(raw, make([]byte, checksumSize, checksumSize+len(raw)/2))
	binary.LittleEndian.PutUint64(out[:checksumSize], xxhash.Sum64(out[checksumSize:]))
	return out, nil
}

// UnmarshalSnapshot restores a workbook written by MarshalSnapshot.  The
// options apply to the restored File as they would to NewFile.
func UnmarshalSnapshot(data []byte, opts ...FileOption) (*File, error) {
	if len(data) < checksumSize {
		return nil, ErrChecksumMismatch
	}
	if binary.LittleEndian.Uint64(data[:checksumSize]) != xxhash.Sum64(data[checksumSize:]) {
		return nil, ErrChecksumMismatch
	}
	raw, err := snapshotDecoder.DecodeAll(data[checksumSize:], nil)
	if err != nil {
		return nil, errors.Wrap(err, "decompress snapshot")
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	f := NewFile(opts...)
	if snap.ID != "" {
		f.ID = snap.ID
	}
	styles, err := ReadStyleSheet(bytes.NewReader(snap.Styles), f.theme, f.log)
	if err != nil {
		return nil, err
	}
	f.setStyles(styles)
	for _, ss := range snap.Sheets {
		sh, err := f.AddSheet(ss.Name)
		if err != nil {
			return nil, err
		}
		for name, index := range ss.Cells {
			c, err := sh.Cell(name)
			if err != nil {
				return nil, err
			}
			if err := c.SetXfIndex(index); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Save stores a snapshot of the workbook under its ID in the store set with
// UseStore (or UseDiskvStore, UseRedisStore) and returns the key.
func (f *File) Save(ctx context.Context) (string, error) {
	if f.store == nil {
		return "", errors.New("no store configured")
	}
	return f.SaveTo(ctx, f.store)
}

// SaveTo stores a snapshot of the workbook in store under its ID.
func (f *File) SaveTo(ctx context.Context, store StyleStore) (string, error) {
	data, err := f.MarshalSnapshot()
	if err != nil {
		return "", err
	}
	if err := store.Put(ctx, f.ID, data); err != nil {
		return "", err
	}
	f.log.Info("workbook styles saved", zap.String("key", f.ID), zap.Int("bytes", len(data)))
	return f.ID, nil
}

// Open restores the workbook stored under key.
func Open(ctx context.Context, store StyleStore, key string, opts ...FileOption) (*File, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	f, err := UnmarshalSnapshot(data, append(opts, UseStore(store))...)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", key)
	}
	return f, nil
}

// OpenConfig opens the store described by cfg and restores the workbook
// stored under key from it.
func OpenConfig(ctx context.Context, cfg *Config, key string) (*File, error) {
	log, err := cfg.Log.Build()
	if err != nil {
		return nil, err
	}
	store, err := cfg.Store.Open(log)
	if err != nil {
		return nil, err
	}
	f, err := Open(ctx, store, key, WithConfig(cfg), WithLogger(log))
	if err != nil {
		store.Close()
		return nil, err
	}
	return f, nil
}
