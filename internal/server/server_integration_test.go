package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/kuchipudi-engine/internal/store"
)

func TestAPI_ProfileWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a calibration profile
	createBody := `{"name": "desk-setup", "hand": "right", "data": {}}`
	resp, err := client.Post(ts.URL+"/api/profiles", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/profiles error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Name != "desk-setup" {
		t.Errorf("created name = %s, want desk-setup", created.Name)
	}

	// 2. List profiles
	resp, _ = client.Get(ts.URL + "/api/profiles")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/profiles status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Profiles []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"profiles"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Profiles) != 1 {
		t.Fatalf("len(profiles) = %d, want 1", len(listed.Profiles))
	}

	// 3. Get single profile
	resp, _ = client.Get(ts.URL + "/api/profiles/" + created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/profiles/%s status = %d, want %d", created.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete profile
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/profiles/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/profiles/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_PresetAndEventWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	createBody := `{"name": "gaming", "data": {"version": 1}}`
	resp, err := client.Post(ts.URL+"/api/presets", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/presets error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	if err := s.Events().Append(&store.Event{BindingID: "left-click", Primitive: "button"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	resp, _ = client.Get(ts.URL + "/api/events")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/events status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Events []struct {
			BindingID string `json:"binding_id"`
		} `json:"events"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(listed.Events))
	}
	if listed.Events[0].BindingID != "left-click" {
		t.Errorf("binding_id = %s, want left-click", listed.Events[0].BindingID)
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
