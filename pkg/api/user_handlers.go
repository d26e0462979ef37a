package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/httputil"
	"github.com/taskvault/taskvault/pkg/service"
)

// UserHandlers handles registration, login, and profile routes.
type UserHandlers struct {
	users *service.UserService
	log   *logrus.Logger
}

// NewUserHandlers creates a new user handlers instance.
func NewUserHandlers(users *service.UserService, log *logrus.Logger) *UserHandlers {
	return &UserHandlers{users: users, log: log}
}

// RegisterPublicRoutes registers the unauthenticated routes.
func (h *UserHandlers) RegisterPublicRoutes(router *mux.Router) {
	router.HandleFunc("/user/register", h.register).Methods("POST")
	router.HandleFunc("/user/login", h.login).Methods("POST")
}

// RegisterProtectedRoutes registers the ownership-guarded profile routes.
func (h *UserHandlers) RegisterProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/user/profile/{id}", h.profile).Methods("GET")
	router.HandleFunc("/user/update/{id}", h.update).Methods("PATCH")
}

// register handles POST /user/register
func (h *UserHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "name, email, and password are required")
		return
	}

	newUser, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteAppError(w, h.log, "user.register", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully registered", map[string]interface{}{
		"newUser": newUser,
	})
}

// login handles POST /user/login
func (h *UserHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "email and password are required")
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteAppError(w, h.log, "user.login", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully authenticated", result)
}

// profile handles GET /user/profile/{id}
func (h *UserHandlers) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		httputil.WriteAppError(w, h.log, "user.profile", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully retrieved profile", map[string]interface{}{
		"user": user,
	})
}

// update handles PATCH /user/update/{id}
func (h *UserHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Name == "" {
		httputil.WriteBadRequest(w, "name is required")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), id, req.Name)
	if err != nil {
		httputil.WriteAppError(w, h.log, "user.update", err)
		return
	}

	httputil.WriteSuccess(w, "Successfully updated profile", map[string]interface{}{
		"user": user,
	})
}
