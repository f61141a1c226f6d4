package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

// errorResponse is the failure body of every account link endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

type emptyResponse struct{}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// NotFound answers unknown routes with a JSON error body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "unknown endpoint "+r.URL.Path)
}

// MethodNotAllowed answers known routes called with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}

// resolveLink authenticates the request by its link-token query parameter
// and checks that the link holds permission ("" = any link).
// It writes the failure response itself and returns false on failure.
func resolveLink(d deps.Deps, w http.ResponseWriter, r *http.Request, permission string) (*domain.AccountLink, bool) {
	raw := r.URL.Query().Get("link-token")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing link-token")
		return nil, false
	}

	token, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid link-token")
		return nil, false
	}

	link, err := d.Store.GetLink(r.Context(), token.String())
	if errors.Is(err, store.ErrLinkNotFound) {
		writeError(w, http.StatusNotFound, "unknown link token")
		return nil, false
	}
	if err != nil {
		d.Logger.Error("failed to load account link", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}

	if permission != "" && !link.HasPermission(permission) {
		d.Logger.Debug("permission refused",
			logger.String("username", link.Username),
			logger.String("permission", permission))
		writeError(w, http.StatusForbidden, "insufficient permissions: "+permission)
		return nil, false
	}

	return link, true
}

// requireParam returns a non-empty query parameter or writes a 400.
func requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		writeError(w, http.StatusBadRequest, "missing "+name)
		return "", false
	}
	return v, true
}
