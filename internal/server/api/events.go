package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/kuchipudi-engine/internal/store"
)

// EventHandler handles read-only HTTP requests over the binding-event log.
// Expected paths: /api/events or /api/events?binding_id={id}
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bindingID := strings.TrimSpace(r.URL.Query().Get("binding_id"))

	var events []*store.Event
	var err error
	if bindingID != "" {
		events, err = h.store.Events().ByBindingID(bindingID)
	} else {
		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, perr := strconv.Atoi(raw); perr == nil && n > 0 {
				limit = n
			}
		}
		events, err = h.store.Events().Recent(limit)
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{Events: make([]eventResponse, 0, len(events))}
	for _, e := range events {
		response.Events = append(response.Events, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, response)
}

type eventResponse struct {
	ID        int64           `json:"id"`
	BindingID string          `json:"binding_id"`
	Primitive string          `json:"primitive"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

func toEventResponse(e *store.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		BindingID: e.BindingID,
		Primitive: e.Primitive,
		Payload:   e.Payload,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
