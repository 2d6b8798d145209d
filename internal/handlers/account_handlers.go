package handlers

import (
	"errors"
	"net/http"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/subscription"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// Profile shows the signed-in user with their tier history.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	history, err := h.Subscriptions.History(r.Context(), user.ID)
	if err != nil {
		Render500(w, r, err)
		return
	}
	viewer := access.ViewerOf(user)
	h.renderRoute(w, r, "profile", map[string]any{
		"user":         user,
		"badge":        tier.BadgeOf(user.Tier),
		"features":     h.Resolver.FeaturesFor(viewer),
		"upgrade_path": h.Resolver.UpgradePath(viewer),
		"history":      history,
	})
}

// Messages is a placeholder page; messaging itself is not implemented.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	h.renderRoute(w, r, "messages", map[string]any{"messages": []string{}})
}

// VipLounge is reachable by VIP members only.
func (h *Handler) VipLounge(w http.ResponseWriter, r *http.Request) {
	h.renderRoute(w, r, "vip-lounge", nil)
}

// NewAd lists the banners a paid member can take as a template.
func (h *Handler) NewAd(w http.ResponseWriter, r *http.Request) {
	h.renderRoute(w, r, "post-ad", map[string]any{"ads": h.Ads.All()})
}

type upgradeRequest struct {
	Tier string `json:"tier"`
}

// Subscribe переводит пользователя на более высокий тариф.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())

	var req upgradeRequest
	if err := decode(w, r, &req, func(get func(string) string) { req.Tier = get("tier") }); err != nil {
		Render400(w, r, err.Error())
		return
	}
	// Здесь строгий разбор: опечатка не должна молча превращаться в Free.
	target, err := tier.Parse(req.Tier)
	if err != nil {
		Render400(w, r, err.Error())
		return
	}

	updated, record, err := h.Subscriptions.Upgrade(r.Context(), user.ID, target)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidUpgrade):
			Render409(w, r, err.Error())
		case errors.Is(err, subscription.ErrUserNotFound):
			Render401(w, r)
		default:
			Render500(w, r, err)
		}
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"user": updated, "subscription": record})
}

// RestrictedRoutes lists the routes closed to the viewer's tier. Anonymous visitors are
// treated as Free.
func (h *Handler) RestrictedRoutes(w http.ResponseWriter, r *http.Request) {
	t := tier.Free
	if user := auth.GetUserFromContext(r.Context()); user != nil {
		t = user.Tier
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"tier": t, "routes": h.Resolver.RestrictedRoutesFor(t)})
}
