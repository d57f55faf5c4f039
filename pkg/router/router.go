package router

import (
	"context"
	"net/http"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/config"
	"github.com/WeepingDogel/simple-social-board-api/pkg/authenticator"
	"github.com/WeepingDogel/simple-social-board-api/pkg/logger"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context, a nil
// returned context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even on error paths.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux         *mux.Router
	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:         mux.NewRouter(),
		cfg:         cfg,
		logger:      logger,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same underlying mux but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(prefix, root string) {
	r.mux.PathPrefix(prefix).Handler(
		http.StripPrefix(prefix, http.FileServer(http.Dir(root))))
}

// Handle mounts a raw http.Handler, used for endpoints that manage their own
// response format like the prometheus exporter.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Websocket mounts a connection-hijacking handler with the same base context
// as generic routes.
func (r *Router) Websocket(pattern string, serve func(ctx context.Context, w http.ResponseWriter, req *http.Request)) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.baseContext(req)
		for _, middleware := range befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				writeError(ctx, w, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		serve(ctx, w, req)
	}).Methods("GET")
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, "GET", handler)).Methods("GET")
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, "POST", handler)).Methods("POST")
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, "PUT", handler)).Methods("PUT")
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, "DELETE", handler)).Methods("DELETE")
}

func (r *Router) baseContext(req *http.Request) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}
