// Package server assembles the relang HTTP server: persistence, business
// logic, and the API that exposes it, wired together and bound to an address.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/relang/server/api"
	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/middle"
	"github.com/dekarrin/relang/server/tunas"
)

// Server is a fully-wired relang HTTP server, ready to be bound to an address
// with ServeForever.
type Server struct {
	db      dao.Store
	backend tunas.Service
	router  chi.Router
}

// New connects to the DB described by cfg, builds the business logic service
// and API layer on top of it, and returns a Server with routes mounted and
// ready to serve. Call cfg.FillDefaults() first if cfg may have unset fields.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	backend := tunas.Service{DB: db}
	a := api.API{
		Backend:     backend,
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(middle.OptionalAuth(db.Users(), a.Secret, a.UnauthDelay)).
			Get("/info", a.HTTPGetInfo())

		r.Post("/login", a.HTTPCreateLogin())
		r.With(middle.RequireAuth(db.Users(), a.Secret, a.UnauthDelay)).
			Delete("/login/{id}", a.HTTPDeleteLogin())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(db.Users(), a.Secret, a.UnauthDelay))

			r.Post("/tokens", a.HTTPCreateToken())

			r.Get("/users", a.HTTPGetAllUsers())
			r.Post("/users", a.HTTPCreateUser())
			r.Get("/users/{id}", a.HTTPGetUser())
			r.Patch("/users/{id}", a.HTTPUpdateUser())
			r.Put("/users/{id}", a.HTTPReplaceUser())
			r.Delete("/users/{id}", a.HTTPDeleteUser())

			r.Get("/library", a.HTTPListLibraryItems())
			r.Post("/library", a.HTTPCreateLibraryItem())
			r.Get("/library/{id}", a.HTTPGetLibraryItem())
			r.Put("/library/{id}", a.HTTPUpdateLibraryItem())
			r.Delete("/library/{id}", a.HTTPDeleteLibraryItem())
			r.Post("/library/operate", a.HTTPOperate())
		})
	})

	return &Server{db: db, backend: backend, router: r}, nil
}

// EnsureAdminUser creates an admin user with the given username and password
// if no user with that username already exists. It is a no-op if the user is
// already present.
func (s *Server) EnsureAdminUser(ctx context.Context, username, password, email string) error {
	_, err := s.backend.DB.Users().GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if err != dao.ErrNotFound {
		return fmt.Errorf("check for existing admin user: %w", err)
	}

	_, err = s.backend.CreateUser(ctx, username, password, email, dao.Admin)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

// ServeForever binds to addr and serves requests until the process is killed
// or the context is canceled. If ctx is nil, context.Background() is used.
func (s *Server) ServeForever(ctx context.Context, addr string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO  relang server listening on %s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// Close releases the resources held by the Server's persistence layer.
func (s *Server) Close() error {
	return s.db.Close()
}
