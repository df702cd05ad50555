package runstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pcarver/featweight/internal/monitor"
)

var (
	ErrNotFound = errors.New("run not found")
	ErrEmptyID  = errors.New("run id cannot be empty")
	ErrNilRun   = errors.New("run cannot be nil")
)

const (
	keyPrefix = "run:"

	defaultCompressionThreshold = 1024 // Compress payloads larger than 1KB
	defaultMaxRetries           = 3
	defaultPoolSize             = 10
	defaultMinIdleConns         = 5
)

// Run is an archived search result.
type Run struct {
	ID          string    `json:"id"`
	Dataset     string    `json:"dataset"`
	Weights     []float64 `json:"weights"`
	Trace       []float64 `json:"trace"`
	Evaluations int       `json:"evaluations"`
	Reduction   float64   `json:"reduction"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRun builds a Run with a fresh UUID and the current timestamp.
func NewRun(dataset string, weights, trace []float64, evaluations int, reduction float64) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Dataset:     dataset,
		Weights:     weights,
		Trace:       trace,
		Evaluations: evaluations,
		Reduction:   reduction,
		CreatedAt:   time.Now().UTC(),
	}
}

// Config holds run store configuration
type Config struct {
	Addr                 string
	Password             string
	DB                   int
	TTL                  time.Duration // 0 keeps runs forever
	PoolSize             int
	MinIdleConns         int
	MaxRetries           int
	CompressionThreshold int
}

// Store archives completed runs in Redis as JSON payloads, gzip-compressed
// above a size threshold.
type Store struct {
	client *redis.Client
	config Config
	logger zerolog.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.MinIdleConns <= 0 {
		cfg.MinIdleConns = defaultMinIdleConns
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.CompressionThreshold <= 0 {
		cfg.CompressionThreshold = defaultCompressionThreshold
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{
		client: client,
		config: cfg,
		logger: log.With().Str("component", "runstore").Logger(),
	}, nil
}

// Save archives a run under its ID.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run == nil {
		return ErrNilRun
	}
	if run.ID == "" {
		return ErrEmptyID
	}

	data, err := json.Marshal(run)
	if err != nil {
		monitor.StoreOperations.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if len(data) > s.config.CompressionThreshold {
		data, err = compress(data)
		if err != nil {
			monitor.StoreOperations.WithLabelValues("save", "error").Inc()
			return err
		}
	}

	if err := s.client.Set(ctx, keyPrefix+run.ID, data, s.config.TTL).Err(); err != nil {
		monitor.StoreOperations.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	monitor.StoreOperations.WithLabelValues("save", "success").Inc()
	s.logger.Debug().Str("run_id", run.ID).Int("bytes", len(data)).Msg("run archived")
	return nil
}

// Get retrieves an archived run by ID. Returns ErrNotFound for unknown IDs.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		monitor.StoreOperations.WithLabelValues("get", "miss").Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		monitor.StoreOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	if isGzip(data) {
		data, err = decompress(data)
		if err != nil {
			monitor.StoreOperations.WithLabelValues("get", "error").Inc()
			return nil, err
		}
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		monitor.StoreOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}

	monitor.StoreOperations.WithLabelValues("get", "success").Inc()
	return &run, nil
}

// List returns the IDs of all archived runs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			monitor.StoreOperations.WithLabelValues("list", "error").Inc()
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		for _, key := range keys {
			ids = append(ids, key[len(keyPrefix):])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	monitor.StoreOperations.WithLabelValues("list", "success").Inc()
	return ids, nil
}

// Delete removes an archived run. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		monitor.StoreOperations.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	monitor.StoreOperations.WithLabelValues("delete", "success").Inc()
	return nil
}

// Close releases the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// compress gzips data
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	if _, err := gz.Write(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// decompress reverses compress
func decompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	defer gz.Close()

	out, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	return out, nil
}

// isGzip checks for the gzip magic bytes.
func isGzip(data []byte) bool {
	return len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b
}
