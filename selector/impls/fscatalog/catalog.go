package fscatalog

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpumpselect/selector"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config describes a pump-data directory: one sub directory per pump, three
// CSV tables per pump. Zero values fall back to the conventional names.
type Config struct {
	Root            string        `yaml:"root" json:"root"`
	BoundaryFile    string        `yaml:"boundaryFile" json:"boundaryFile"`
	CurvesFile      string        `yaml:"curvesFile" json:"curvesFile"`
	PowerFile       string        `yaml:"powerFile" json:"powerFile"`
	CacheExpiration time.Duration `yaml:"cacheExpiration" json:"cacheExpiration"`
}

func LoadConfig(fileName string) (cfg Config, err error) {
	d, err := os.ReadFile(fileName)
	if err != nil {
		return
	}

	err = yaml.Unmarshal(d, &cfg)

	return
}

func (cfg *Config) applyDefaults() {
	if cfg.BoundaryFile == "" {
		cfg.BoundaryFile = "Pump_boundary.csv"
	}

	if cfg.CurvesFile == "" {
		cfg.CurvesFile = "Head_Efficiency.csv"
	}

	if cfg.PowerFile == "" {
		cfg.PowerFile = "Power.csv"
	}

	if cfg.CacheExpiration <= 0 {
		cfg.CacheExpiration = 5 * time.Minute
	}
}

func NewFSCatalog(cfg Config, logger l.Wrapper) selector.Catalog {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "fsCatalog"))

	cfg.applyDefaults()

	return &fsCatalogImpl{
		logger:       logger,
		cfg:          cfg,
		cachedTables: cache.New(cfg.CacheExpiration, cfg.CacheExpiration),
	}
}

type fsCatalogImpl struct {
	logger       l.Wrapper
	cfg          Config
	cachedTables *cache.Cache
}

// ListPumps returns the sub directory names of the catalog root, in directory
// listing order. A missing root is an empty catalog, not an error.
func (impl *fsCatalogImpl) ListPumps() (names []string, err error) {
	entries, err := os.ReadDir(impl.cfg.Root)
	if err != nil {
		if os.IsNotExist(err) {
			impl.logger.WithFields(l.StringField("root", impl.cfg.Root)).Warn("catalog root not found")

			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return
}

func (impl *fsCatalogImpl) PumpTables(name string) (tables *selector.PumpTables, err error) {
	if i, ok := impl.cachedTables.Get(name); ok {
		tables, _ = i.(*selector.PumpTables)

		return
	}

	pumpRoot := filepath.Join(impl.cfg.Root, name)

	if fi, e := os.Stat(pumpRoot); e != nil || !fi.IsDir() {
		err = commerr.ErrNotFound

		return
	}

	tables = &selector.PumpTables{
		Boundary: impl.readTable(filepath.Join(pumpRoot, impl.cfg.BoundaryFile), name),
		Curves:   impl.readTable(filepath.Join(pumpRoot, impl.cfg.CurvesFile), name),
		Power:    impl.readTable(filepath.Join(pumpRoot, impl.cfg.PowerFile), name),
	}

	impl.cachedTables.Set(name, tables, cache.DefaultExpiration)

	return
}

// readTable parses one CSV file: first record is the header, every other
// record is a sample row. Unparsable or missing cells become NaN. A missing
// or malformed file yields a nil table, never an error.
func (impl *fsCatalogImpl) readTable(fileName, pump string) *selector.Table {
	f, err := os.Open(fileName)
	if err != nil {
		if !os.IsNotExist(err) {
			impl.logger.WithFields(l.ErrorField(err), l.StringField("pump", pump)).Warn("open table failed")
		}

		return nil
	}

	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("pump", pump),
			l.StringField("file", fileName)).Warn("parse table failed")

		return nil
	}

	if len(records) == 0 {
		return nil
	}

	t := &selector.Table{
		Names: records[0],
		Cols:  make([][]float64, len(records[0])),
	}

	for _, record := range records[1:] {
		for col := range t.Names {
			v := math.NaN()

			if col < len(record) {
				if fv, e := cast.ToFloat64E(record[col]); e == nil {
					v = fv
				}
			}

			t.Cols[col] = append(t.Cols[col], v)
		}
	}

	return t
}
