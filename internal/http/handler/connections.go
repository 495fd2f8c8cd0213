package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"entwine/internal/auth"
	"entwine/internal/collision"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ConnectionHandler struct {
	Store *collision.Store
}

type sharedEventDTO struct {
	ID             uint64          `json:"id"`
	EventType      string          `json:"event_type"`
	EventDate      time.Time       `json:"event_date"`
	DurationHours  *float64        `json:"duration_hours,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	UserASourceRef string          `json:"user_a_source_ref,omitempty"`
	UserBSourceRef string          `json:"user_b_source_ref,omitempty"`
	Confidence     float64         `json:"confidence"`
	Detail         json.RawMessage `json:"detail"`
}

// Graph returns the authed user's connection graph: one edge per connected
// peer, strongest first.
func (h *ConnectionHandler) Graph(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	edges, err := h.Store.ConnectionGraph(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(edges)
}

// SharedEvents returns the evidence between the authed user and one peer,
// newest first.
func (h *ConnectionHandler) SharedEvents(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	peerStr := chi.URLParam(r, "userID")
	peer, err := strconv.ParseUint(peerStr, 10, 64)
	if err != nil || peer == uid {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	events, err := h.Store.SharedEventsBetween(r.Context(), uid, peer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]sharedEventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, sharedEventDTO{
			ID:             e.ID,
			EventType:      string(e.EventType),
			EventDate:      e.EventDate,
			DurationHours:  e.DurationHours,
			Location:       e.Location,
			Latitude:       e.Latitude,
			Longitude:      e.Longitude,
			UserASourceRef: e.UserASourceRef,
			UserBSourceRef: e.UserBSourceRef,
			Confidence:     e.Confidence,
			Detail:         e.Detail,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
