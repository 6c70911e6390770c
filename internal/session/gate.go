// Package session implements the application access gate: a shared
// passphrase checked locally, with a 24-hour session record persisted
// between runs. It is a deterrent for the UI only — the REST API has no
// authentication and this gate must never be documented as a security
// boundary.
package session

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TTL is how long a successful login stays valid.
const TTL = 24 * time.Hour

// ErrBadPassphrase is returned when the entered passphrase does not match
// the configured secret.
var ErrBadPassphrase = errors.New("incorrect passphrase")

// Record is the persisted session: an opaque id and an absolute expiry.
type Record struct {
	ID     string    `json:"id"`
	Expiry time.Time `json:"expiry"`
}

// Store persists at most one session record.
type Store interface {
	Load() (*Record, error)
	Save(Record) error
	Clear() error
}

// FileStore keeps the record as a small JSON file, the CLI equivalent of
// the browser's local storage entry.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath places the session file under the user config dir.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "auto-entrepreneur-invoices", "session.json")
}

func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// a corrupt session file is treated as no session
		return nil, nil
	}
	return &rec, nil
}

func (s *FileStore) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Gate is the two-state machine: Unauthenticated until Login succeeds or a
// stored unexpired record is found, back to Unauthenticated on Logout or
// expiry.
type Gate struct {
	secret        string
	store         Store
	now           func() time.Time
	authenticated bool
}

// NewGate builds a gate over the configured secret and store. A stored
// session that has not expired authenticates immediately; an expired or
// unreadable one is discarded.
func NewGate(secret string, store Store) *Gate {
	return newGate(secret, store, time.Now)
}

func newGate(secret string, store Store, now func() time.Time) *Gate {
	g := &Gate{secret: secret, store: store, now: now}
	rec, err := store.Load()
	if err != nil || rec == nil {
		return g
	}
	if now().Before(rec.Expiry) {
		g.authenticated = true
	} else {
		_ = store.Clear()
	}
	return g
}

// Authenticated reports the current state.
func (g *Gate) Authenticated() bool {
	return g.authenticated
}

// Login compares the passphrase against the configured secret and on success
// persists a fresh session record. An empty configured secret never matches.
func (g *Gate) Login(passphrase string) error {
	if g.secret == "" ||
		subtle.ConstantTimeCompare([]byte(passphrase), []byte(g.secret)) != 1 {
		return ErrBadPassphrase
	}
	rec := Record{
		ID:     uuid.NewString(),
		Expiry: g.now().Add(TTL),
	}
	if err := g.store.Save(rec); err != nil {
		return err
	}
	g.authenticated = true
	return nil
}

// Logout discards the stored session and forces Unauthenticated.
func (g *Gate) Logout() error {
	g.authenticated = false
	return g.store.Clear()
}
