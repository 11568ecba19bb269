package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

// GET /api/prompt?prompt&tech&name → {message, action?, error?, userName?}

type AssistantHandler struct {
	prompter port.Prompter
}

func RegisterAssistant(mux *http.ServeMux, prompter port.Prompter) {
	h := AssistantHandler{prompter}
	mux.HandleFunc("/api/prompt", allow(h.Prompt, http.MethodGet))
}

func (h AssistantHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.Prompt"
	log := slog.With("op", op)

	query := r.URL.Query()
	prompt := query.Get("prompt")
	tech := query.Get("tech")

	if prompt == "" || tech == "" {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:    "Missing required parameters",
			Required: []string{"prompt", "tech"},
		})
		return
	}

	reply, err := h.prompter.Prompt(
		r.Context(), session(r), tech, prompt, query.Get("name"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownVariant) {
			writeError(w, http.StatusBadRequest, ErrorResponse{
				Error: "Invalid or missing tech parameter",
			})
			return
		}
		log.Error("failed to process prompt", "err", err)
		writeError(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	log.Info("prompt processed", "hasAction", reply.Action != nil)
	writeJSON(w, http.StatusOK, toPromptResponse(reply))
}
