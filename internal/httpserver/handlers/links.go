package handlers

import (
	"errors"
	"net/http"

	"github.com/vjeantet/jodaTime"

	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/store"
	"github.com/MrSnakeDoc/accountlink/pkg/accountlink"
)

type linkInfoResponse struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	Domain      string   `json:"domain"`
	Date        string   `json:"date"`
}

// LinkInfo serves the profile and permission list of a link.
func LinkInfo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := resolveLink(d, w, r, "")
		if !ok {
			return
		}

		permissions := link.Permissions
		if permissions == nil {
			permissions = []string{}
		}

		writeJSON(w, http.StatusOK, linkInfoResponse{
			Username:    link.Username,
			Permissions: permissions,
			Domain:      link.Domain,
			Date:        jodaTime.Format(accountlink.LinkDateFormat, link.CreatedAt.UTC()),
		})
	}
}

// RemoveLink deletes a link. Later calls with its token get a 404.
func RemoveLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := resolveLink(d, w, r, "")
		if !ok {
			return
		}

		err := d.Store.DeleteLink(r.Context(), link.Token)
		switch {
		case errors.Is(err, store.ErrLinkNotFound):
			writeError(w, http.StatusNotFound, "unknown link token")
			return
		case err != nil:
			d.Logger.Error("failed to remove account link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		d.Logger.Info("account link removed", logger.String("username", link.Username))
		writeJSON(w, http.StatusOK, emptyResponse{})
	}
}
