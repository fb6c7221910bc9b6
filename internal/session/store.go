package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"love-diary-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// TTL is how long a saved session stays valid.
const TTL = 7 * 24 * time.Hour

// State is the answer to "who is logged in right now".
type State struct {
	Active bool         `json:"active"`
	User   *models.User `json:"user"`
}

type entry struct {
	User    *models.User `json:"user_info"`
	SavedAt time.Time    `json:"login_time"`
}

// Store persists per-user session snapshots to local disk with a fixed
// expiry window. Storage failures are logged and degrade to "not logged
// in" rather than surfacing errors to callers.
type Store struct {
	mu      sync.RWMutex
	dataDir string
	now     func() time.Time
	active  map[string]entry
}

// NewStore creates a session store rooted at dataDir and loads any
// previously persisted sessions.
func NewStore(dataDir string) *Store {
	s := &Store{
		dataDir: dataDir,
		now:     time.Now,
		active:  make(map[string]entry),
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", dataDir).Msg("Failed to create session data dir")
		return s
	}
	s.loadAll()
	return s
}

// Save persists the user snapshot and marks the session active.
func (s *Store) Save(user *models.User) {
	e := entry{User: user, SavedAt: s.now()}

	s.mu.Lock()
	s.active[user.ID] = e
	s.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to encode session")
		return
	}
	if err := os.WriteFile(s.path(user.ID), data, 0o600); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to persist session")
	}
}

// Check loads the persisted session for a user. A missing snapshot or one
// older than TTL invalidates the session and clears local state.
func (s *Store) Check(userID string) State {
	s.mu.RLock()
	e, ok := s.active[userID]
	s.mu.RUnlock()

	if !ok {
		e, ok = s.loadOne(userID)
		if !ok {
			return State{}
		}
		s.mu.Lock()
		s.active[userID] = e
		s.mu.Unlock()
	}

	if s.now().Sub(e.SavedAt) >= TTL {
		s.Clear(userID)
		return State{}
	}

	return State{Active: true, User: e.User}
}

// Get returns the in-memory session state without touching disk.
func (s *Store) Get(userID string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.active[userID]
	if !ok || s.now().Sub(e.SavedAt) >= TTL {
		return State{}
	}
	return State{Active: true, User: e.User}
}

// Clear wipes persisted state for a user and marks the session inactive.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.active, userID)
	s.mu.Unlock()

	if err := os.Remove(s.path(userID)); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to remove persisted session")
	}
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("session_%s.json", userID))
}

func (s *Store) loadOne(userID string) (entry, bool) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to read persisted session")
		}
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to decode persisted session")
		return entry{}, false
	}
	if e.User == nil {
		return entry{}, false
	}
	return e, true
}

func (s *Store) loadAll() {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		log.Error().Err(err).Str("dir", s.dataDir).Msg("Failed to scan session data dir")
		return
	}
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dataDir, name))
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to read persisted session")
			continue
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil || e.User == nil {
			log.Error().Err(err).Str("file", name).Msg("Skipping unreadable session file")
			continue
		}
		s.active[e.User.ID] = e
	}
}
