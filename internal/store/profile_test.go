package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates a new Store with a temp-dir database for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "kuchipudi-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestProfileRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	profile := &Profile{
		ID:   "profile-1",
		Name: "default",
		Hand: HandRight,
		Data: json.RawMessage(`{"motion_axes":{}}`),
	}

	if err := repo.Create(profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if profile.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set after create")
	}

	retrieved, err := repo.GetByID("profile-1")
	if err != nil {
		t.Fatalf("failed to get profile by ID: %v", err)
	}
	if retrieved.Name != profile.Name {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, profile.Name)
	}
	if retrieved.Hand != HandRight {
		t.Errorf("Hand mismatch: got %q, want %q", retrieved.Hand, HandRight)
	}
}

func TestProfileRepository_Create_DuplicateNameSameHand(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p1 := &Profile{ID: "p1", Name: "default", Hand: HandRight, Data: json.RawMessage(`{}`)}
	p2 := &Profile{ID: "p2", Name: "default", Hand: HandRight, Data: json.RawMessage(`{}`)}

	if err := repo.Create(p1); err != nil {
		t.Fatalf("failed to create first profile: %v", err)
	}
	if err := repo.Create(p2); err == nil {
		t.Error("creating a profile with duplicate (hand, name) should fail")
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	profiles := []*Profile{
		{ID: "p1", Name: "default", Hand: HandRight, Data: json.RawMessage(`{}`)},
		{ID: "p2", Name: "lefty", Hand: HandLeft, Data: json.RawMessage(`{}`)},
	}
	for _, p := range profiles {
		if err := repo.Create(p); err != nil {
			t.Fatalf("failed to create profile %q: %v", p.Name, err)
		}
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(list) != len(profiles) {
		t.Errorf("expected %d profiles, got %d", len(profiles), len(list))
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	profile := &Profile{ID: "p1", Name: "default", Hand: HandRight, Data: json.RawMessage(`{"a":1}`)}
	if err := repo.Create(profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	originalUpdatedAt := profile.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	profile.Data = json.RawMessage(`{"a":2}`)
	if err := repo.Update(profile); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	retrieved, err := repo.GetByID("p1")
	if err != nil {
		t.Fatalf("failed to get profile after update: %v", err)
	}
	if string(retrieved.Data) != `{"a":2}` {
		t.Errorf("Data not updated: got %s", retrieved.Data)
	}
	if !retrieved.UpdatedAt.After(originalUpdatedAt) {
		t.Error("UpdatedAt should advance after Update")
	}
}

func TestProfileRepository_Update_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	err := repo.Update(&Profile{ID: "missing", Name: "x", Hand: HandLeft, Data: json.RawMessage(`{}`)})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	profile := &Profile{ID: "p1", Name: "default", Hand: HandRight, Data: json.RawMessage(`{}`)}
	if err := repo.Create(profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	_, err := repo.GetByID("p1")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestProfileRepository_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	err := repo.Delete("non-existent-id")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
