package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
	"github.com/niksmo/shop-assistant/internal/core/service"
)

// GET  /api/user        → {name,email,isNewUser,conversationCount}
// POST /api/user/name   {name} → {message,name,isNewUser}
// POST /api/user/reset  → {success,message,userProfile,timestamp}

const (
	fallbackUserName = "Usuario"
	demoUserEmail    = "usuario@example.com"
)

type UserHandler struct {
	profiles port.ProfileProvider
}

func RegisterUser(mux *http.ServeMux, profiles port.ProfileProvider) {
	h := UserHandler{profiles}
	mux.HandleFunc("/api/user", allow(h.GetUser, http.MethodGet))
	mux.HandleFunc("/api/user/name", allow(h.PostName, http.MethodPost))
	mux.HandleFunc("/api/user/reset", allow(h.PostReset, http.MethodPost))
}

func (h UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	const op = "UserHandler.GetUser"

	p, err := h.profiles.Profile(r.Context(), session(r))
	if err != nil {
		h.writeInternal(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(p))
}

func (h UserHandler) PostName(w http.ResponseWriter, r *http.Request) {
	const op = "UserHandler.PostName"
	log := slog.With("op", op)

	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: "Valid name is required",
		})
		return
	}

	p, err := h.profiles.SetName(r.Context(), session(r), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			writeError(w, http.StatusBadRequest, ErrorResponse{
				Error: "Valid name is required",
			})
			return
		}
		h.writeInternal(w, op, err)
		return
	}

	log.Info("user name updated", "name", p.Name)
	writeJSON(w, http.StatusOK, NameResponse{
		Message:   "Name updated successfully",
		Name:      p.Name,
		IsNewUser: p.IsNewUser,
	})
}

func (h UserHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	const op = "UserHandler.PostReset"

	p, err := h.profiles.Reset(r.Context(), session(r))
	if err != nil {
		h.writeInternal(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, ResetResponse{
		Success: true,
		Message: "User profile reset successfully",
		UserProfile: UserResponse{
			Name:              p.Name,
			Email:             demoUserEmail,
			IsNewUser:         p.IsNewUser,
			ConversationCount: p.ConversationCount,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h UserHandler) writeInternal(w http.ResponseWriter, op string, err error) {
	slog.Error("user request failed", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: fmt.Sprintf("%v", err),
	})
}

func toUserResponse(p domain.Profile) UserResponse {
	name := p.Name
	if name == "" {
		name = fallbackUserName
	}
	return UserResponse{
		Name:              name,
		Email:             demoUserEmail,
		IsNewUser:         p.IsNewUser,
		ConversationCount: p.ConversationCount,
	}
}
