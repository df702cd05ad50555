package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoRecords is returned when the source contains no data rows
	ErrNoRecords = errors.New("no data records")

	// ErrTooFewColumns is returned when rows lack a feature column before the label
	ErrTooFewColumns = errors.New("need at least one feature column and a label column")
)

// Dataset holds a parsed tabular dataset: real-valued feature rows and one
// label per row, taken from the last column. Datasets handed out by a Loader
// may be shared between callers and must be treated as read-only.
type Dataset struct {
	Features [][]float64
	Labels   []string
}

// Samples returns the number of rows.
func (d *Dataset) Samples() int { return len(d.Features) }

// FeatureCount returns the number of feature columns.
func (d *Dataset) FeatureCount() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// Parse reads comma-separated records from r. All columns except the last are
// parsed as floats; the last column is kept verbatim as the label. A leading
// header row is detected and skipped when any of its feature fields fails to
// parse as a number.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("%w, got %d columns", ErrTooFewColumns, len(records[0]))
	}

	if isHeader(records[0]) {
		records = records[1:]
		if len(records) == 0 {
			return nil, ErrNoRecords
		}
	}

	ds := &Dataset{
		Features: make([][]float64, 0, len(records)),
		Labels:   make([]string, 0, len(records)),
	}
	width := len(records[0])
	for i, record := range records {
		if len(record) != width {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(record), width)
		}

		row := make([]float64, width-1)
		for j := 0; j < width-1; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		ds.Features = append(ds.Features, row)
		ds.Labels = append(ds.Labels, record[width-1])
	}

	return ds, nil
}

// Load parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

// isHeader reports whether the record looks like a header row: a row whose
// feature fields do not all parse as numbers. The label field is ignored
// since labels are frequently non-numeric in data rows too.
func isHeader(record []string) bool {
	for _, field := range record[:len(record)-1] {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return true
		}
	}
	return false
}

// Loader loads datasets from disk with an LRU cache keyed by path, so
// repeated runs over the same file parse it once.
type Loader struct {
	cache  *lru.Cache[string, *Dataset]
	logger zerolog.Logger
}

// NewLoader creates a loader caching up to size parsed datasets.
func NewLoader(size int) (*Loader, error) {
	cache, err := lru.New[string, *Dataset](size)
	if err != nil {
		return nil, fmt.Errorf("creating dataset cache: %w", err)
	}
	return &Loader{
		cache:  cache,
		logger: log.With().Str("component", "dataset").Logger(),
	}, nil
}

// Load returns the dataset at path, from cache when available.
func (l *Loader) Load(path string) (*Dataset, error) {
	if ds, ok := l.cache.Get(path); ok {
		l.logger.Debug().Str("path", path).Msg("dataset cache hit")
		return ds, nil
	}

	ds, err := Load(path)
	if err != nil {
		return nil, err
	}

	l.cache.Add(path, ds)
	l.logger.Debug().
		Str("path", path).
		Int("samples", ds.Samples()).
		Int("features", ds.FeatureCount()).
		Msg("dataset loaded")
	return ds, nil
}
