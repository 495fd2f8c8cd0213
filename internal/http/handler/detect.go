package handler

import (
	"encoding/json"
	"net/http"

	"entwine/internal/auth"
	"entwine/internal/collision"
)

type DetectHandler struct {
	Engine    *collision.Engine
	Scheduler *collision.Scheduler
}

// Trigger runs a synchronous detection sweep of the authed user against all
// other opted-in users. This is the one path where a detection error reaches
// the caller instead of being absorbed.
func (h *DetectHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	count, err := h.Engine.DetectForUser(r.Context(), uid)
	if err != nil {
		http.Error(w, "detection failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"collisions_found": count,
	})
}

func (h *DetectHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, last := h.Scheduler.Status()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"state":      state,
		"last_sweep": last,
	})
}
