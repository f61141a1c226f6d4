package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/accountlink/pkg/accountlink"
)

func init() { Register("links", registerLinks) }

// registerLinks mounts one route per account link endpoint, on the same
// paths the client resolves them to.
func registerLinks(r chi.Router, d deps.Deps) {
	r.Route(d.BasePath, func(r chi.Router) {
		r.Get(accountlink.Info.Path(), handlers.LinkInfo(d))
		r.Post(accountlink.RemoveLink.Path(), handlers.RemoveLink(d))
		r.Get(accountlink.GetEmail.Path(), handlers.Email(d))
		r.Post(accountlink.SendComment.Path(), handlers.SendComment(d))
		r.Get(accountlink.ReadComments.Path(), handlers.ReadComments(d))
		r.Post(accountlink.Like.Path(), handlers.Like(d))
		r.Post(accountlink.Dislike.Path(), handlers.Dislike(d))
	})
}
