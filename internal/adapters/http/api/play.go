package api

import (
	"net/http"
)

// playHandler serves the embedded browser game page.
type playHandler struct{}

func newPlayHandler() *playHandler {
	return &playHandler{}
}

// HandlePlay handles GET /play requests with the embedded game page.
func (h *playHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, playFS, "play.html")
}

// HandleRoot redirects the root path to the game page.
func (h *playHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/play", http.StatusFound)
}
