package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/priyakashinagar/ReelPostCity--sub001/config"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/ads"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/handlers"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/lifecycle"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/metrics"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/middleware"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/posts"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/subscription"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// shutdownTimeout - сколько ждать завершения активных запросов при остановке.
const shutdownTimeout = 10 * time.Second

var log = logger.StdLogger().With("server")

// App собирает хранилище и сервисы приложения по конфигурации.
type App struct {
	Config        *config.Config
	Store         store.Store
	Records       *store.Records
	Tiers         *tier.Table
	Engine        *lifecycle.Engine
	Resolver      *access.Resolver
	Auth          *auth.Service
	Posts         *posts.Service
	Subscriptions *subscription.Service
	Ads           *ads.Provider
}

// NewApp открывает хранилище, проверяет таблицы тарифов и маршрутов и создает сервисы.
// Ошибка конфигурации прерывает запуск.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	tiers, err := tier.NewTable(tier.Overrides{
		Free:    cfg.Tiers.Free,
		Premium: cfg.Tiers.Premium,
		Vip:     cfg.Tiers.Vip,
	})
	if err != nil {
		return nil, err
	}
	routes, err := access.DefaultRoutes()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("server: open store: %w", err)
	}
	records := store.NewRecords(st)

	adList, err := ads.Seed(ctx, records)
	if err != nil {
		st.Close()
		return nil, err
	}

	engine := lifecycle.New(tiers)
	return &App{
		Config:   cfg,
		Store:    st,
		Records:  records,
		Tiers:    tiers,
		Engine:   engine,
		Resolver: access.NewResolver(routes, tiers),
		Auth: auth.NewService(records,
			auth.WithSessionTTL(cfg.Session.Expiration),
			auth.WithCookieSecure(cfg.Server.CookieSecure),
		),
		Posts:         posts.NewService(records, engine),
		Subscriptions: subscription.NewService(records, tiers),
		Ads:           ads.NewProvider(adList, nil),
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// applyMiddleware оборачивает h так, что m[0] выполняется первым.
func applyMiddleware(h http.Handler, m ...func(http.Handler) http.Handler) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// Handler строит маршрутизатор со всеми middleware. limiter может быть nil.
func (a *App) Handler(limiter *middleware.RateLimiter) http.Handler {
	h := &handlers.Handler{
		Auth:          a.Auth,
		Posts:         a.Posts,
		Subscriptions: a.Subscriptions,
		Ads:           a.Ads,
		Resolver:      a.Resolver,
	}
	route := func(id string, fn http.HandlerFunc) http.Handler {
		return middleware.RequireRoute(a.Resolver, id)(fn)
	}

	mux := http.NewServeMux()

	// Регистрация маршрутов
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("GET /posts", h.ListPosts)
	mux.Handle("GET /posts/new", route("create", h.NewPostForm))
	mux.Handle("POST /posts", route("create", h.CreatePost))
	mux.Handle("GET /posts/mine", route("my-posts", h.MyPosts))
	mux.Handle("GET /posts/{id}", route("post", h.GetPost))
	mux.Handle("DELETE /posts/{id}", route("my-posts", h.DeletePost))

	mux.Handle("GET /profile", route("profile", h.Profile))
	mux.Handle("GET /messages", route("messages", h.Messages))
	mux.Handle("GET /vip", route("vip-lounge", h.VipLounge))
	mux.Handle("GET /ads/new", route("post-ad", h.NewAd))
	mux.Handle("POST /subscription", route("subscription", h.Subscribe))
	mux.HandleFunc("GET /routes/restricted", h.RestrictedRoutes)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", h.Healthz)

	chain := []func(http.Handler) http.Handler{
		middleware.LoggerMiddleware,
		middleware.SecureHeadersMiddleware,
	}
	if limiter != nil {
		chain = append(chain, limiter.Middleware)
	}
	chain = append(chain,
		middleware.MethodOverrideMiddleware,
		middleware.Auth(a.Auth),
	)
	return applyMiddleware(mux, chain...)
}

// Run слушает cfg.Addr() до отмены ctx, затем корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := a.Config
	go a.Auth.CleanupExpiredSessions(ctx, cfg.Session.CleanupInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Cleanup(ctx, time.Minute)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.Handler(limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof(ctx, "Server starting on http://localhost:%d (store: %s)", cfg.Server.Port, cfg.Store.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info(ctx, "Shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
