package handlers

import (
	"net/http"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/posts"
)

// homePage - все, что нужно клиенту для отрисовки главной страницы.
type homePage struct {
	User        *models.User             `json:"user"`
	Navigation  []access.RouteDefinition `json:"navigation"`
	Features    access.Features          `json:"features"`
	Breadcrumbs []access.Breadcrumb      `json:"breadcrumbs"`
	UpgradePath []access.UpgradeOption   `json:"upgrade_path"`
	Ad          *models.Ad               `json:"ad,omitempty"`
	Posts       []posts.View             `json:"posts"`
}

// Home отображает главную страницу с активными объявлениями.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	viewer := access.ViewerOf(user)

	active, err := h.Posts.Active(r.Context())
	if err != nil {
		Render500(w, r, err)
		return
	}

	page := homePage{
		User:        user,
		Navigation:  h.Resolver.NavigationFor(viewer),
		Features:    h.Resolver.FeaturesFor(viewer),
		Breadcrumbs: h.Resolver.BreadcrumbsFor(nil),
		UpgradePath: h.Resolver.UpgradePath(viewer),
		Posts:       active,
	}
	if ad, ok := h.Ads.Pick(viewer); ok {
		page.Ad = &ad
	}
	renderJSON(w, r, http.StatusOK, page)
}

// routePage описывает страницу маршрута для клиента.
type routePage struct {
	Route       access.RouteDefinition `json:"route"`
	Breadcrumbs []access.Breadcrumb    `json:"breadcrumbs"`
	Data        any                    `json:"data,omitempty"`
}

func (h *Handler) renderRoute(w http.ResponseWriter, r *http.Request, routeID string, data any) {
	route, ok := h.Resolver.Route(routeID)
	if !ok {
		Render404(w, r)
		return
	}
	renderJSON(w, r, http.StatusOK, routePage{Route: route, Breadcrumbs: h.Resolver.BreadcrumbsFor(&route), Data: data})
}
