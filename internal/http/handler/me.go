package handler

import (
	"encoding/json"
	"net/http"

	"entwine/internal/auth"

	"gorm.io/gorm"
)

type MeHandler struct {
	DB *gorm.DB
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var u auth.User
	if err := h.DB.Where("id = ?", uid).First(&u).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user_id":                     u.ID,
		"email":                       u.Email,
		"display_name":                u.DisplayName,
		"collision_detection_enabled": u.CollisionDetectionEnabled,
	})
}

type settingsReq struct {
	CollisionDetectionEnabled *bool `json:"collision_detection_enabled"`
}

// UpdateSettings toggles the opt-in flag the detection engine reads.
func (h *MeHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req settingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.CollisionDetectionEnabled == nil {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	if err := h.DB.Model(&auth.User{}).
		Where("id = ?", uid).
		Update("collision_detection_enabled", *req.CollisionDetectionEnabled).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
