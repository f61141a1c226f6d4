package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/pkg/accountlink"
)

type emailResponse struct {
	Email string `json:"email"`
}

type commentsResponse struct {
	Comments []string `json:"comments"`
}

type reactionResponse struct {
	Active bool `json:"active"`
}

func Email(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := resolveLink(d, w, r, accountlink.PermissionEmail)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, emailResponse{Email: link.Email})
	}
}

// SendComment appends the decoded content parameter to the video's comments.
func SendComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := resolveLink(d, w, r, accountlink.PermissionSendComment)
		if !ok {
			return
		}
		video, ok := requireParam(w, r, "video")
		if !ok {
			return
		}
		content, ok := requireParam(w, r, "content")
		if !ok {
			return
		}

		if err := d.Store.AddComment(r.Context(), video, content); err != nil {
			d.Logger.Error("failed to add comment",
				logger.String("video", video),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		d.Logger.Debug("comment added",
			logger.String("username", link.Username),
			logger.String("video", video))
		writeJSON(w, http.StatusOK, emptyResponse{})
	}
}

func ReadComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := resolveLink(d, w, r, accountlink.PermissionReadComments); !ok {
			return
		}
		video, ok := requireParam(w, r, "video")
		if !ok {
			return
		}

		comments, err := d.Store.Comments(r.Context(), video)
		if err != nil {
			d.Logger.Error("failed to read comments",
				logger.String("video", video),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, commentsResponse{Comments: comments})
	}
}

// Like and Dislike are both gated by krio/like.
func Like(d deps.Deps) http.HandlerFunc {
	return toggleReaction(d, domain.ReactionLike)
}

func Dislike(d deps.Deps) http.HandlerFunc {
	return toggleReaction(d, domain.ReactionDislike)
}

func toggleReaction(d deps.Deps, reaction domain.Reaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := resolveLink(d, w, r, accountlink.PermissionLike)
		if !ok {
			return
		}
		video, ok := requireParam(w, r, "video")
		if !ok {
			return
		}

		active, err := d.Store.ToggleReaction(r.Context(), video, link.Username, reaction)
		if err != nil {
			d.Logger.Error("failed to toggle reaction",
				logger.String("video", video),
				logger.String("reaction", string(reaction)),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, reactionResponse{Active: active})
	}
}
