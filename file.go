package xlsxstyle

import (
	"io"
	"math"
	"sync"

	"github.com/pkg/errors"
	"github.com/rogpeppe/fastuuid"
	"go.uber.org/zap"
)

var idGenerator = fastuuid.MustNewGenerator()

// File is a workbook as far as styling goes: the stylesheet and the sheets
// whose cells point into it.
type File struct {
	ID string

	styles      *StyleSheet
	sheets      []*Sheet
	sheetByName map[string]*Sheet
	sheetsMu    sync.RWMutex

	cfg   *Config
	theme *Theme
	log   *zap.Logger
	store StyleStore
	// storeFromConfig is set by WithConfig.
	storeFromConfig bool

	sizeMu sync.Mutex
	size   *defaultSize
}

// defaultSize caches the row height and column width derived from the Normal
// font.
type defaultSize struct {
	rowHeight   float64
	columnWidth float64
}

// NewFile creates a workbook with the default stylesheet.
func NewFile(opts ...FileOption) *File {
	f := &File{
		ID:          idGenerator.Hex128(),
		sheetByName: make(map[string]*Sheet),
		cfg:         DefaultConfig(),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.theme == nil {
		theme, err := f.cfg.Theme()
		if err != nil {
			f.log.Warn("invalid theme in config, using the default theme", zap.Error(err))
			theme = DefaultTheme()
		}
		f.theme = theme
	}
	if f.store == nil && f.storeFromConfig {
		store, err := f.cfg.Store.Open(f.log)
		if err != nil {
			f.log.Error("cannot open the configured store", zap.Error(err))
		} else {
			f.store = store
		}
	}
	f.setStyles(NewStyleSheet(f.cfg.Font(), f.theme, f.log))
	return f
}

func (f *File) setStyles(s *StyleSheet) {
	s.normalChanged = f.invalidateDefaultSize
	f.styles = s
	f.invalidateDefaultSize()
}

// Styles returns the stylesheet of the workbook.
func (f *File) Styles() *StyleSheet {
	return f.styles
}

// ReadStyles replaces the stylesheet with one read from a styles.xml part.
// Every styled cell must still point at an existing cell format.
func (f *File) ReadStyles(r io.Reader) error {
	s, err := ReadStyleSheet(r, f.theme, f.log)
	if err != nil {
		return err
	}
	n := s.CellXfs.Len()
	for _, sh := range f.Sheets() {
		for _, index := range sh.styledCells() {
			if index >= n {
				return NewLookupError("cellXfs", index, n)
			}
		}
	}
	f.setStyles(s)
	return nil
}

// WriteStyles writes the stylesheet as a styles.xml part.
func (f *File) WriteStyles(w io.Writer) error {
	_, err := f.styles.WriteTo(w)
	return err
}

// AddSheet adds a sheet called name.
func (f *File) AddSheet(name string) (*Sheet, error) {
	if name == "" {
		return nil, errors.New("sheet name must not be empty")
	}
	f.sheetsMu.Lock()
	defer f.sheetsMu.Unlock()
	if _, ok := f.sheetByName[name]; ok {
		return nil, errors.Errorf("duplicate sheet name %q", name)
	}
	sh := &Sheet{Name: name, file: f, cells: make(map[CellRef]int)}
	f.sheets = append(f.sheets, sh)
	f.sheetByName[name] = sh
	return sh, nil
}

// Sheet returns the sheet called name.
func (f *File) Sheet(name string) (*Sheet, bool) {
	f.sheetsMu.RLock()
	defer f.sheetsMu.RUnlock()
	sh, ok := f.sheetByName[name]
	return sh, ok
}

// Sheets returns the sheets in the order they were added.
func (f *File) Sheets() []*Sheet {
	f.sheetsMu.RLock()
	defer f.sheetsMu.RUnlock()
	out := make([]*Sheet, len(f.sheets))
	copy(out, f.sheets)
	return out
}

// NamedStyle returns the Style of the named style called name.
func (f *File) NamedStyle(name string) (*Style, error) {
	if _, ok := f.styles.NamedStyles.Get(name); !ok {
		return nil, NewInvalidOperationError("NamedStyle", "no named style called "+name)
	}
	return newStyle(f.styles, &namedStyleTarget{name: name}), nil
}

// CreateNamedStyle adds a named style based on basedOn ("" for Normal) and
// returns its Style.
func (f *File) CreateNamedStyle(name, basedOn string) (*Style, error) {
	if name == "" {
		return nil, NewInvalidOperationError("CreateNamedStyle", "a named style needs a name")
	}
	if _, err := f.styles.CreateNamedStyle(name, basedOn); err != nil {
		return nil, err
	}
	return newStyle(f.styles, &namedStyleTarget{name: name}), nil
}

// NamedStyles returns the named styles of the workbook.
func (f *File) NamedStyles() []CellStyle {
	return f.styles.NamedStyles.All()
}

func (f *File) invalidateDefaultSize() {
	f.sizeMu.Lock()
	f.size = nil
	f.sizeMu.Unlock()
}

func (f *File) defaultSize() defaultSize {
	f.sizeMu.Lock()
	defer f.sizeMu.Unlock()
	if f.size == nil {
		s := f.styles
		xf := s.CellStyleXfs.at(s.normalXfID())
		font := s.Fonts.at(xf.FontID)
		f.size = computeDefaultSize(font.Size)
	}
	return *f.size
}

// computeDefaultSize approximates the sizes Excel derives from the Normal
// font: 15pt rows for 11pt text, 8 characters plus padding per column.
func computeDefaultSize(fontSize float64) *defaultSize {
	if !(fontSize > 0) {
		fontSize = 11
	}
	rowHeight := math.Round(fontSize*15/11*4) / 4
	mdw := math.Round(fontSize * 7 / 11)
	if mdw < 1 {
		mdw = 1
	}
	width := math.Trunc((8*mdw+5)/mdw*256) / 256
	return &defaultSize{rowHeight: rowHeight, columnWidth: width}
}

// DefaultRowHeight returns the height in points of a row without a custom
// height.  It follows the font of the Normal named style.
func (f *File) DefaultRowHeight() float64 {
	return f.defaultSize().rowHeight
}

// DefaultColumnWidth returns the width in characters of a column without a
// custom width.
func (f *File) DefaultColumnWidth() float64 {
	return f.defaultSize().columnWidth
}

// Close releases the store the File saves to.
func (f *File) Close() error {
	if f.store == nil {
		return nil
	}
	return f.store.Close()
}
