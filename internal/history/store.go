package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/nicobailon/vslaunch/internal/logging"
)

// MaxEntries is how many records survive a Save.
const MaxEntries = 35

// maxBackupCandidates bounds the search for a free quarantine file name.
const maxBackupCandidates = 10000

var log = logging.ForComponent(logging.CompHistory)

// rename is swapped in tests.
var rename = os.Rename

// ID identifies a record for the lifetime of one Store. IDs are not persisted.
type ID uint64

// Sequence hands out increasing IDs.
type Sequence struct {
	next ID
}

func NewSequence(start ID) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) Next() ID {
	id := s.next
	s.next++
	return id
}

// Entry pairs a record with its store ID.
type Entry struct {
	ID     ID
	Record Record
}

type Store struct {
	path        string
	records     map[ID]Record
	seq         *Sequence
	quarantined string
}

type Option func(*Store)

// WithSequence makes the store draw IDs from seq.
func WithSequence(seq *Sequence) Option {
	return func(s *Store) { s.seq = seq }
}

// New returns an empty store that saves to path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, records: map[ID]Record{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.seq == nil {
		s.seq = NewSequence(1)
	}
	return s
}

// Load reads the history file at path. A missing file yields an empty store.
// A file that does not parse is moved aside and an empty store is returned;
// Quarantined reports where it went. If it cannot be moved aside Load fails
// rather than let a later Save overwrite it.
func Load(path string, opts ...Option) (*Store, error) {
	s := New(path, opts...)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("history_missing", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}

	records, err := decode(data)
	if err != nil {
		log.Warn("history_corrupt", "path", path, "error", err.Error())
		backup, mvErr := quarantine(path)
		if mvErr != nil {
			return nil, fmt.Errorf("history %s is unreadable (%v) and could not be moved aside: %w", path, err, mvErr)
		}
		log.Warn("history_reset", "backup", backup)
		s.quarantined = backup
		return s, nil
	}

	// Older files may hold several records that are equal now; oldest first
	// so the newest of each survives the upsert.
	slices.SortStableFunc(records, func(a, b Record) int {
		return a.LastOpened.Compare(b.LastOpened)
	})
	for _, r := range records {
		s.Upsert(r)
	}
	log.Debug("history_loaded", "path", path, "entries", s.Len(), "read", len(records))
	return s, nil
}

var errNoEntries = errors.New(`history object has no "entries" array`)

func decode(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		raw, ok := wrapped["entries"]
		if !ok {
			return nil, errNoEntries
		}
		data = raw
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// quarantine renames a broken history file to the first free backup name.
func quarantine(path string) (string, error) {
	target := backupPath(path)
	if err := rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

func backupPath(path string) string {
	base := path + ".bak"
	for i := 0; i < maxBackupCandidates; i++ {
		candidate := base
		if i > 0 {
			candidate = base + "." + strconv.Itoa(i)
		}
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return base
}

func (s *Store) Path() string { return s.path }

// Quarantined returns the backup path of a corrupt history file moved aside
// by Load, or "".
func (s *Store) Quarantined() string { return s.quarantined }

func (s *Store) Len() int { return len(s.records) }

func (s *Store) Get(id ID) (Record, bool) {
	r, ok := s.records[id]
	return r, ok
}

// Entries returns all records ordered by ID.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.records))
	for id, r := range s.records {
		out = append(out, Entry{ID: id, Record: r})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Insert always adds a new entry. Use Upsert to avoid duplicates.
func (s *Store) Insert(r Record) ID {
	id := s.seq.Next()
	s.records[id] = r
	return id
}

// Update replaces the record stored under id and returns the previous value.
func (s *Store) Update(id ID, r Record) (Record, bool) {
	old, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	s.records[id] = r
	return old, true
}

func (s *Store) Delete(id ID) (Record, bool) {
	old, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	delete(s.records, id)
	return old, true
}

// Upsert replaces the entry equal to r, keeping its ID, or inserts r.
func (s *Store) Upsert(r Record) ID {
	for _, e := range s.Entries() {
		if e.Record.Equal(r) {
			s.records[e.ID] = r
			return e.ID
		}
	}
	return s.Insert(r)
}

// Recent returns entries newest first, at most limit of them (all if limit <= 0).
func (s *Store) Recent(limit int) []Entry {
	entries := s.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Record.LastOpened.Compare(a.Record.LastOpened)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Save writes the newest MaxEntries records to the history file, replacing it
// in one rename.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	entries := s.Recent(MaxEntries)
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		log.Debug("history_chmod_failed", "error", err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	log.Debug("history_saved", "path", s.path, "entries", len(records))
	return nil
}
