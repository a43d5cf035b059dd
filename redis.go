package xlsxstyle

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/xenking/redis"
	"go.uber.org/zap"
)

const defaultRedisNamespace = "xlsxstyle"

// RedisStore keeps snapshots in a Redis hash, with a sorted set indexing the
// keys by the time they were saved.
type RedisStore struct {
	client    *redis.Client
	snapshots string
	index     string
	log       *zap.Logger
}

type RedisStoreOption struct {
	RedisAddr      string
	Namespace      string
	CommandTimeout time.Duration
	DialTimeout    time.Duration
	Logger         *zap.Logger
}

// UseRedisStore is a FileOption that makes File.Save write snapshots to
// Redis.  You can use this option to share styled workbooks between
// processes.
func UseRedisStore(option RedisStoreOption) FileOption {
	return func(f *File) {
		if option.Logger == nil {
			option.Logger = f.log
		}
		store, err := NewRedisStore(option)
		if err != nil {
			f.log.Error("cannot open redis store", zap.Error(err))
			return
		}
		f.store = store
	}
}

func NewRedisStore(option RedisStoreOption) (*RedisStore, error) {
	if option.RedisAddr == "" {
		return nil, errors.New("redis store needs an address")
	}
	ns := option.Namespace
	if ns == "" {
		ns = defaultRedisNamespace
	}
	log := option.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{
		client:    redis.NewClient(option.RedisAddr, option.CommandTimeout, option.DialTimeout),
		snapshots: ns + ":snapshots",
		index:     ns + ":index",
		log:       log,
	}, nil
}

func (rs *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := rs.client.HSET(rs.snapshots, key, data); err != nil {
		return errors.Wrapf(err, "store snapshot %s", key)
	}
	if _, err := rs.client.ZADDString(rs.index, time.Now().UnixNano(), key); err != nil {
		return errors.Wrapf(err, "index snapshot %s", key)
	}
	rs.log.Debug("snapshot stored", zap.String("store", "redis"), zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := rs.client.HGET(rs.snapshots, key)
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot %s", key)
	}
	if b == nil {
		return nil, ErrSnapshotNotFound
	}
	rs.log.Debug("snapshot loaded", zap.String("store", "redis"), zap.String("key", key), zap.Int("bytes", len(b)))
	return b, nil
}

func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := rs.client.HDEL(rs.snapshots, key); err != nil {
		return errors.Wrapf(err, "delete snapshot %s", key)
	}
	return nil
}

// Keys returns the stored keys, oldest save first.  Deleted keys stay in the
// index until Purge and are skipped here.
func (rs *RedisStore) Keys(ctx context.Context) ([]string, error) {
	indexed, err := rs.client.ZRANGEString(rs.index, 0, -1)
	if err != nil {
		return nil, err
	}
	keys := indexed[:0]
	for _, key := range indexed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := rs.client.HGET(rs.snapshots, key)
		if err != nil {
			return nil, err
		}
		if b != nil {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Purge removes every snapshot of the namespace.
func (rs *RedisStore) Purge() error {
	if _, err := rs.client.DEL(rs.snapshots); err != nil {
		return err
	}
	_, err := rs.client.DEL(rs.index)
	return err
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
