package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/slices"

	"github.com/hailam/goprior/internal/model"
)

// Storage keys
const (
	keyStats     = "stats"
	prefixExport = "export/"
	prefixModel  = "model/"
)

// ErrModelNotFound is returned by LoadModel for an unknown name.
var ErrModelNotFound = errors.New("model not found")

// ExportRecord is the move list of one exported position.
type ExportRecord struct {
	Tag        string `json:"tag"`
	MoveNumber int    `json:"move_number"`
	BoardSize  int    `json:"board_size"`
	Chosen     string `json:"chosen"`
	// Lines holds the Wistuba lines, one per candidate move.
	Lines []string `json:"lines"`
}

func exportKey(tag string, moveNumber int) []byte {
	return []byte(fmt.Sprintf("%s%s/%06d", prefixExport, tag, moveNumber))
}

// ExportStats accumulates export statistics.
type ExportStats struct {
	Games      int       `json:"games"`
	Positions  int       `json:"positions"`
	Lines      int       `json:"lines"`
	Failed     int       `json:"failed"`
	LastExport time.Time `json:"last_export"`
}

// ExportResult is the outcome of exporting one game.
type ExportResult struct {
	Positions int
	Lines     int
	Err       error
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives in memory only.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) putJSON(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// getJSON decodes the value of key into v and reports whether it exists.
func (s *Storage) getJSON(key []byte, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SaveExport stores the move list of a position, replacing any previous
// export of the same position.
func (s *Storage) SaveExport(rec *ExportRecord) error {
	return s.putJSON(exportKey(rec.Tag, rec.MoveNumber), rec)
}

// SaveExports stores a batch of records in one write batch.
func (s *Storage) SaveExports(recs []ExportRecord) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i := range recs {
		data, err := json.Marshal(&recs[i])
		if err != nil {
			return err
		}
		if err := wb.Set(exportKey(recs[i].Tag, recs[i].MoveNumber), data); err != nil {
			return fmt.Errorf("failed to store export: %w", err)
		}
	}
	return wb.Flush()
}

// LoadExport returns the stored record of a position, or nil.
func (s *Storage) LoadExport(tag string, moveNumber int) (*ExportRecord, error) {
	rec := &ExportRecord{}
	found, err := s.getJSON(exportKey(tag, moveNumber), rec)
	if err != nil || !found {
		return nil, err
	}
	return rec, nil
}

// ForEachExport calls fn for every stored record of the game tag, or of all
// games when tag is empty, in key order.
func (s *Storage) ForEachExport(tag string, fn func(*ExportRecord) error) error {
	prefix := []byte(prefixExport)
	if tag != "" {
		prefix = []byte(prefixExport + tag + "/")
	}
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec ExportRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountExports returns the number of stored positions.
func (s *Storage) CountExports() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixExport)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// SaveModel stores a weight model under name in the text weight format.
func (s *Storage) SaveModel(name string, m *model.Model) error {
	var buf bytes.Buffer
	if err := model.Write(&buf, m); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixModel+name), buf.Bytes())
	})
}

// LoadModel loads the weight model stored under name.
func (s *Storage) LoadModel(name string) (*model.Model, error) {
	var m *model.Model
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixModel + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%q: %w", name, ErrModelNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			m, err = model.Read(bytes.NewReader(val))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return m, nil
}

// ListModels returns the names of the stored models, sorted.
func (s *Storage) ListModels() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixModel)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), prefixModel))
		}
		return nil
	})
	slices.Sort(names)
	return names, err
}

// LoadStats loads export statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*ExportStats, error) {
	stats := &ExportStats{}
	_, err := s.getJSON([]byte(keyStats), stats)
	return stats, err
}

// SaveStats saves export statistics
func (s *Storage) SaveStats(stats *ExportStats) error {
	return s.putJSON([]byte(keyStats), stats)
}

// RecordExport adds the outcome of one exported game to the statistics.
func (s *Storage) RecordExport(result ExportResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Games++
	if result.Err != nil {
		stats.Failed++
	}
	stats.Positions += result.Positions
	stats.Lines += result.Lines
	stats.LastExport = time.Now()

	return s.SaveStats(stats)
}

// AverageLines returns the mean number of candidate lines per position.
func (s *ExportStats) AverageLines() float64 {
	if s.Positions == 0 {
		return 0
	}
	return float64(s.Lines) / float64(s.Positions)
}
