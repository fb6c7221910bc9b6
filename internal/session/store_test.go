package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"love-diary-backend/internal/models"
)

func testUser(id string) *models.User {
	return &models.User{ID: id, Phone: "13800138000", Username: "user_8000"}
}

func TestSaveAndCheck(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Save(testUser("u1"))

	state := s.Check("u1")
	if !state.Active {
		t.Fatal("session should be active after Save")
	}
	if state.User.ID != "u1" {
		t.Errorf("user ID = %q, want u1", state.User.ID)
	}
}

func TestCheckUnknownUser(t *testing.T) {
	s := NewStore(t.TempDir())

	if state := s.Check("nobody"); state.Active {
		t.Error("unknown user must not have an active session")
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	s.Save(testUser("u1"))
	s.Clear("u1")

	if state := s.Check("u1"); state.Active {
		t.Error("session should be inactive after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, "session_u1.json")); !os.IsNotExist(err) {
		t.Error("persisted session file should be removed by Clear")
	}
}

func TestExpiryAfterSevenDays(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	saved := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return saved }
	s.Save(testUser("u1"))

	s.now = func() time.Time { return saved.Add(TTL - time.Second) }
	if state := s.Check("u1"); !state.Active {
		t.Error("session just inside the window should still be active")
	}

	s.now = func() time.Time { return saved.Add(TTL) }
	if state := s.Check("u1"); state.Active {
		t.Error("session at the expiry boundary should be inactive")
	}

	// Expiry also wipes the persisted snapshot.
	if _, err := os.Stat(filepath.Join(dir, "session_u1.json")); !os.IsNotExist(err) {
		t.Error("expired session file should be removed")
	}
}

func TestSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir)
	first.Save(testUser("u1"))

	second := NewStore(dir)
	if state := second.Check("u1"); !state.Active {
		t.Error("persisted session should survive a store restart")
	}
}

func TestCorruptFileDegradesToInactive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session_u1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	if state := s.Check("u1"); state.Active {
		t.Error("corrupt session file must not produce an active session")
	}
}

func TestGetDoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir)
	first.Save(testUser("u1"))

	second := &Store{dataDir: dir, now: time.Now, active: map[string]entry{}}
	if state := second.Get("u1"); state.Active {
		t.Error("Get must only consult in-memory state")
	}
	if state := second.Check("u1"); !state.Active {
		t.Error("Check should fall back to the persisted snapshot")
	}
}
