package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const defaultSession = "default"

// session resolves the caller's session id. Clients without the header
// share one demo session, matching the single-shopper original.
func session(r *http.Request) string {
	if s := r.Header.Get("X-Session-Id"); s != "" {
		return s
	}
	return defaultSession
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, e ErrorResponse) {
	writeJSON(w, status, e)
}

// CORS opens every route to any origin and short-circuits preflight
// requests with an empty 200, as the original serverless handlers do.
func CORS(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization, X-Session-Id",
		)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// Recover converts handler panics into a 500 response carrying the
// panic message, keeping requests isolated from each other.
func Recover(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			slog.Error("handler panicked", "path", r.URL.Path, "err", rec)

			msg := "Unknown error"
			if err, ok := rec.(error); ok {
				msg = err.Error()
			}
			writeError(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: msg,
			})
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// allow guards a route to the listed methods; everything else gets the
// JSON 405 of the original handlers. OPTIONS is ended by CORS earlier.
func allow(next http.HandlerFunc, methods ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "Method not allowed",
		})
	}
}
