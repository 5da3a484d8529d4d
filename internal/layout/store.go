package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Storage is a synchronous string slot keyed by name.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store owns the current layout and writes it back to storage after every
// replacement. It has a single writer (the dashboard) and needs no locking.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
	current Layout
}

// Load reads the slot once. A missing, unreadable or unparsable value falls
// back to Default without surfacing an error.
func Load(ctx context.Context, storage Storage, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{storage: storage, key: key, logger: logger}
	s.current = s.read(ctx)
	return s
}

func (s *Store) read(ctx context.Context) Layout {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("layout read failed, using default", "key", s.key, "err", err)
		return Default()
	}
	if !ok {
		s.logger.Info("no stored layout, using default", "key", s.key)
		return Default()
	}
	l, err := Decode(raw)
	if err != nil {
		s.logger.Warn("stored layout unparsable, using default", "key", s.key, "err", err)
		return Default()
	}
	return l
}

// Layout returns a copy of the current value.
func (s *Store) Layout() Layout {
	return s.current.Clone()
}

// Replace swaps in l as the whole new value and persists it. The in-memory
// value is replaced even if the write fails.
func (s *Store) Replace(ctx context.Context, l Layout) error {
	s.current = l.Clone()
	raw, err := Encode(s.current)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.logger.Error("layout write failed", "key", s.key, "err", err)
		return fmt.Errorf("persist layout: %w", err)
	}
	s.logger.Debug("layout persisted", "key", s.key, "ids", s.current.IDs())
	return nil
}

// Reset replaces the layout with Default.
func (s *Store) Reset(ctx context.Context) error {
	return s.Replace(ctx, Default())
}

// Encode serializes l as the JSON array stored in the slot.
func Encode(l Layout) (string, error) {
	if l == nil {
		l = Layout{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored slot. A JSON null counts as unparsable.
func Decode(raw string) (Layout, error) {
	var l Layout
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("decode layout: empty value")
	}
	return l, nil
}

// MemoryStorage keeps slots in a map. It backs tests and runs with
// persistence disabled.
type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}
