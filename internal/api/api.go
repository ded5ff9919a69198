package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/StaffDesk-io/staffdesk/internal/auth"
	"github.com/StaffDesk-io/staffdesk/internal/config"
	"github.com/StaffDesk-io/staffdesk/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Api struct {
	Config config.Config
	Store  *store.Store
	Auth   *auth.Service
	Router *chi.Mux
}

func NewApi(cfg config.Config, st *store.Store) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("Must have at least a port to start API")
	}

	api := &Api{
		Config: cfg,
		Store:  st,
		Auth:   auth.NewService(st),
		Router: chi.NewRouter(),
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://*.local:*", "http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Public routes
	r.Post("/register", api.RegisterHandler)
	r.Post("/login", api.LoginHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(api.TokenAuthMiddleware)

		r.Post("/logout", api.LogoutHandler)
		r.Get("/user", api.CurrentUserHandler)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", api.ListEmployeesHandler)
			r.Post("/", api.CreateEmployeeHandler)
			r.Get("/{employeeID}", api.ShowEmployeeHandler)
			r.Put("/{employeeID}", api.UpdateEmployeeHandler)
			r.Patch("/{employeeID}", api.UpdateEmployeeHandler)
			r.Delete("/{employeeID}", api.DestroyEmployeeHandler)
		})
	})
}

func (api *Api) Serve() {
	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Printf("Starting API server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router))
}
