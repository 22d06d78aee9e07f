package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

// LoadVolunteers reads the volunteer table at path.
// A missing file is an empty table.
func LoadVolunteers(path string) ([]*core.Volunteer, error) {
	var volunteers []*core.Volunteer
	err := readFile(path, func(in io.Reader) error {
		var err error
		volunteers, err = ReadVolunteers(in)
		return err
	})
	return volunteers, err
}

// LoadRequests reads the help request table at path.
// A missing file is an empty table.
func LoadRequests(path string) ([]*core.HelpRequest, error) {
	var requests []*core.HelpRequest
	err := readFile(path, func(in io.Reader) error {
		var err error
		requests, err = ReadRequests(in)
		return err
	})
	return requests, err
}

// SaveVolunteers replaces the volunteer table at path.
func SaveVolunteers(path string, volunteers []*core.Volunteer) error {
	return writeFile(path, func(out io.Writer) error {
		return WriteVolunteers(out, volunteers)
	})
}

// SaveRequests replaces the help request table at path.
func SaveRequests(path string, requests []*core.HelpRequest) error {
	return writeFile(path, func(out io.Writer) error {
		return WriteRequests(out, requests)
	})
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// writeFile writes to a temporary sibling and renames it over path, so a
// failed write never leaves a truncated table behind.
func writeFile(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Store keeps volunteers and help requests in two CSV files.
// Every call re-reads the file, so edits made by other tools are picked up.
// Writes are serialized within one process only.
type Store struct {
	volunteerPath string
	requestPath   string
	mu            sync.RWMutex
	logger        *slog.Logger
}

var (
	_ storage.VolunteerRepository = (*Store)(nil)
	_ storage.RequestRepository   = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "csvfile")
		return nil
	}
}

// Open returns a Store over the given volunteer and request files.
// The files need not exist yet.
func Open(volunteerPath, requestPath string, opts ...Option) (*Store, error) {
	if volunteerPath == "" || requestPath == "" {
		return nil, ErrPathRequired
	}
	s := &Store{
		volunteerPath: volunteerPath,
		requestPath:   requestPath,
		logger:        slog.Default().With("component", "csvfile"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases resources. Store holds no open files.
func (s *Store) Close() error {
	return nil
}

// AddVolunteers appends volunteers to the table and rewrites the file.
func (s *Store) AddVolunteers(ctx context.Context, volunteers ...*core.Volunteer) ([]*core.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := LoadVolunteers(s.volunteerPath)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(table)+len(volunteers))
	for _, v := range table {
		ids = append(ids, v.ID)
	}

	stored := make([]*core.Volunteer, 0, len(volunteers))
	for _, v := range volunteers {
		record := core.NormalizeVolunteer(v)
		if record.ID == "" {
			record.ID = storage.NextFreeID(core.VolunteerPrefix, ids)
		} else if slices.Contains(ids, record.ID) {
			return nil, fmt.Errorf("volunteer %s: %w", record.ID, storage.ErrDuplicateKey)
		}
		ids = append(ids, record.ID)
		stored = append(stored, record)
	}

	if err := SaveVolunteers(s.volunteerPath, append(table, stored...)); err != nil {
		return nil, err
	}
	s.logger.Debug("volunteers added", "count", len(stored), "path", s.volunteerPath)
	return stored, nil
}

// GetVolunteer returns the first volunteer row with the given ID.
func (s *Store) GetVolunteer(ctx context.Context, id string) (*core.Volunteer, error) {
	volunteers, err := s.ListVolunteers(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range volunteers {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListVolunteers returns every volunteer row in file order.
func (s *Store) ListVolunteers(ctx context.Context) ([]*core.Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return LoadVolunteers(s.volunteerPath)
}

// AddRequests appends help requests to the table and rewrites the file.
func (s *Store) AddRequests(ctx context.Context, requests ...*core.HelpRequest) ([]*core.HelpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := LoadRequests(s.requestPath)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(table)+len(requests))
	for _, r := range table {
		ids = append(ids, r.ID)
	}

	stored := make([]*core.HelpRequest, 0, len(requests))
	for _, r := range requests {
		record := core.NormalizeHelpRequest(r)
		if record.ID == "" {
			record.ID = storage.NextFreeID(core.RequestPrefix, ids)
		} else if slices.Contains(ids, record.ID) {
			return nil, fmt.Errorf("request %s: %w", record.ID, storage.ErrDuplicateKey)
		}
		ids = append(ids, record.ID)
		stored = append(stored, record)
	}

	if err := SaveRequests(s.requestPath, append(table, stored...)); err != nil {
		return nil, err
	}
	s.logger.Debug("requests added", "count", len(stored), "path", s.requestPath)
	return stored, nil
}

// GetRequest returns the first request row with the given ID.
func (s *Store) GetRequest(ctx context.Context, id string) (*core.HelpRequest, error) {
	requests, err := s.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListRequests returns every request row in file order.
func (s *Store) ListRequests(ctx context.Context) ([]*core.HelpRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return LoadRequests(s.requestPath)
}
