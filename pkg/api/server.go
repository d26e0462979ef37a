// Package api assembles the HTTP surface: public registration/login
// routes, bearer-authenticated task routes, and ownership-guarded
// instance routes.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/middleware"
	"github.com/taskvault/taskvault/pkg/observability"
	"github.com/taskvault/taskvault/pkg/service"
)

// Server is the API server's HTTP handler.
type Server struct {
	router *mux.Router
}

// Deps carries the collaborators the server wires together.
type Deps struct {
	Users   *service.UserService
	Tasks   *service.TaskService
	Auth    *middleware.Auth
	Guard   *middleware.OwnershipGuard
	Metrics *observability.Metrics
	Log     *logrus.Logger
}

// NewServer builds the router. Route layout:
//
//	public:            POST /user/register, POST /user/login
//	authenticated:     POST /task/save, GET /task/all
//	ownership-guarded: routes carrying an {id}
func NewServer(deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logrus.New()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	if deps.Metrics != nil {
		router.Use(middleware.NewMetricsMiddleware(deps.Metrics).Handler)
	}

	userHandlers := NewUserHandlers(deps.Users, deps.Log)
	taskHandlers := NewTaskHandlers(deps.Tasks, deps.Log)

	// Public routes must be registered before the protected subrouter so
	// they match without passing through the auth middleware.
	userHandlers.RegisterPublicRoutes(router)

	// Authenticated routes without a specific instance: the guard's id
	// sentinel would deny them, so they sit behind auth only.
	authenticated := router.PathPrefix("/").Subrouter()
	authenticated.Use(deps.Auth.Handler)
	taskHandlers.RegisterCollectionRoutes(authenticated)

	// Instance routes go through auth and the ownership guard.
	guarded := router.PathPrefix("/").Subrouter()
	guarded.Use(deps.Auth.Handler, deps.Guard.Handler)
	taskHandlers.RegisterInstanceRoutes(guarded)
	userHandlers.RegisterProtectedRoutes(guarded)

	return &Server{router: router}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
