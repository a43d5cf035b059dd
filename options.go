package xlsxstyle

import (
	"go.uber.org/zap"
)

// FileOption configures a File when it is created.
type FileOption func(f *File)

// WithConfig makes the File use cfg for its default font, theme and store.
// The store is opened unless another option already set one.
func WithConfig(cfg *Config) FileOption {
	return func(f *File) {
		if cfg != nil {
			f.cfg = cfg
			f.storeFromConfig = true
		}
	}
}

// WithLogger sets the logger the File and its stylesheet log to.
func WithLogger(log *zap.Logger) FileOption {
	return func(f *File) {
		if log != nil {
			f.log = log
		}
	}
}

// WithTheme sets the theme colours resolve against, overriding the one
// built from the config.
func WithTheme(theme *Theme) FileOption {
	return func(f *File) {
		f.theme = theme
	}
}

// UseStore is a FileOption that makes File.Save persist snapshots to store.
func UseStore(store StyleStore) FileOption {
	return func(f *File) {
		f.store = store
	}
}
