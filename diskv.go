package xlsxstyle

import (
	"context"
	"os"
	"sort"

	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DiskvStoreOption configures a DiskvStore.
type DiskvStoreOption struct {
	BasePath string
	// CacheSizeMax is the size in bytes of the in-memory read cache.
	CacheSizeMax uint64
	Logger       *zap.Logger
}

// DiskvStore keeps snapshots as files below a base directory.
type DiskvStore struct {
	d   *diskv.Diskv
	log *zap.Logger
}

// UseDiskvStore is a FileOption that makes File.Save write snapshots to disk.
func UseDiskvStore(option DiskvStoreOption) FileOption {
	return func(f *File) {
		if option.Logger == nil {
			option.Logger = f.log
		}
		store, err := NewDiskvStore(option)
		if err != nil {
			f.log.Error("cannot open disk store", zap.Error(err))
			return
		}
		f.store = store
	}
}

func NewDiskvStore(option DiskvStoreOption) (*DiskvStore, error) {
	if option.BasePath == "" {
		return nil, errors.New("disk store needs a base path")
	}
	log := option.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := diskv.New(diskv.Options{
		BasePath:     option.BasePath,
		Transform:    snapshotPath,
		CacheSizeMax: option.CacheSizeMax,
	})
	return &DiskvStore{d: d, log: log}, nil
}

// snapshotPath spreads keys over two levels of directories named after their
// first four characters.
func snapshotPath(key string) []string {
	if len(key) < 4 {
		return []string{}
	}
	return []string{key[0:2], key[2:4]}
}

func (s *DiskvStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(key, data); err != nil {
		return errors.Wrapf(err, "write snapshot %s", key)
	}
	s.log.Debug("snapshot stored", zap.String("store", "disk"), zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (s *DiskvStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "read snapshot %s", key)
	}
	s.log.Debug("snapshot loaded", zap.String("store", "disk"), zap.String("key", key), zap.Int("bytes", len(b)))
	return b, nil
}

func (s *DiskvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "erase snapshot %s", key)
	}
	return nil
}

func (s *DiskvStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Purge removes every snapshot below the base path.
func (s *DiskvStore) Purge() error {
	return s.d.EraseAll()
}

func (s *DiskvStore) Close() error {
	return nil
}
