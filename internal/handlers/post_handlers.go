package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/posts"
)

// ListPosts отдает активные объявления, опционально по категории (?category=).
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var (
		list []posts.View
		err  error
	)
	if category != "" {
		list, err = h.Posts.ByCategory(r.Context(), category)
	} else {
		list, err = h.Posts.Active(r.Context())
	}
	if err != nil {
		Render500(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"category": posts.NormalizeCategory(category), "posts": list})
}

// NewPostForm describes the create form and its limits.
func (h *Handler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	h.renderRoute(w, r, "create", map[string]int{
		"max_title_len":   posts.MaxTitleLen,
		"max_content_len": posts.MaxContentLen,
	})
}

// CreatePost публикует объявление от имени текущего пользователя.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())

	var in posts.Input
	if err := decode(w, r, &in, func(get func(string) string) {
		in.Title, in.Content, in.Category, in.City = get("title"), get("content"), get("category"), get("city")
	}); err != nil {
		Render400(w, r, err.Error())
		return
	}

	post, err := h.Posts.Create(r.Context(), user, in)
	if err != nil {
		switch {
		case errors.Is(err, posts.ErrInvalidInput):
			Render400(w, r, err.Error())
		case errors.Is(err, posts.ErrNoOwner):
			Render401(w, r)
		default:
			Render500(w, r, err)
		}
		return
	}
	view, err := h.Posts.Get(r.Context(), post.ID)
	if err != nil {
		Render500(w, r, err)
		return
	}
	w.Header().Set("Location", "/posts/"+post.ID)
	renderJSON(w, r, http.StatusCreated, view)
}

// MyPosts отдает объявления пользователя; ?expired=true включает истекшие.
func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	includeExpired, _ := strconv.ParseBool(r.URL.Query().Get("expired"))

	list, err := h.Posts.ByOwner(r.Context(), user.ID, includeExpired)
	if err != nil {
		Render500(w, r, err)
		return
	}
	h.renderRoute(w, r, "my-posts", list)
}

// GetPost отдает одно активное объявление.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	view, err := h.Posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			Render404(w, r)
			return
		}
		Render500(w, r, err)
		return
	}
	route, _ := h.Resolver.Route("post")
	renderJSON(w, r, http.StatusOK, map[string]any{
		"post":        view,
		"breadcrumbs": h.Resolver.BreadcrumbsFor(&route),
		"features":    h.Resolver.FeaturesFor(access.ViewerOf(auth.GetUserFromContext(r.Context()))),
	})
}

// DeletePost удаляет объявление; удалить может только владелец.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	err := h.Posts.Delete(r.Context(), user, r.PathValue("id"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, posts.ErrNotFound):
		Render404(w, r)
	case errors.Is(err, posts.ErrForbidden):
		Render403(w, r, "You are not authorized to delete this post.")
	case errors.Is(err, posts.ErrNoOwner):
		Render401(w, r)
	default:
		Render500(w, r, err)
	}
}
