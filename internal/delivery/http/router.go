package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/handler"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	patientHandler *handler.PatientHandler
	sessionHandler *handler.SessionHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	sessionHandler *handler.SessionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		userHandler:    userHandler,
		patientHandler: patientHandler,
		sessionHandler: sessionHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/time", r.serverTime).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/supervisor", r.authHandler.RegisterSupervisor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/reset/request", r.authHandler.RequestReset).Methods(http.MethodPost)
	auth.HandleFunc("/reset/verify", r.authHandler.VerifyReset).Methods(http.MethodPost)

	// Self-service profile (any authenticated role)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)

	// User lifecycle (admin)
	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Worker management
	workersCreate := api.PathPrefix("/workers").Subrouter()
	workersCreate.Use(r.authMiddleware.Authenticate)
	workersCreate.Use(middleware.RequireSupervisor)
	workersCreate.HandleFunc("", r.userHandler.CreateWorker).Methods(http.MethodPost)

	workersList := api.PathPrefix("/workers").Subrouter()
	workersList.Use(r.authMiddleware.Authenticate)
	workersList.Use(middleware.RequireSupervisorOrAdmin)
	workersList.HandleFunc("", r.userHandler.ListWorkers).Methods(http.MethodGet)

	// Worker detail is self-or-privileged, resolved in the usecase.
	workerGet := api.PathPrefix("/workers").Subrouter()
	workerGet.Use(r.authMiddleware.Authenticate)
	workerGet.HandleFunc("/{id}", r.userHandler.GetWorker).Methods(http.MethodGet)

	// Patient management (supervisor)
	patientsSup := api.PathPrefix("/patients").Subrouter()
	patientsSup.Use(r.authMiddleware.Authenticate)
	patientsSup.Use(middleware.RequireSupervisor)
	patientsSup.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patientsSup.HandleFunc("/{id}/assign", r.patientHandler.AssignWorker).Methods(http.MethodPost)
	patientsSup.HandleFunc("/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	patientsElevated := api.PathPrefix("/patients").Subrouter()
	patientsElevated.Use(r.authMiddleware.Authenticate)
	patientsElevated.Use(middleware.RequireSupervisorOrAdmin)
	patientsElevated.HandleFunc("", r.patientHandler.ListPatients).Methods(http.MethodGet)

	patientsWorker := api.PathPrefix("/patients").Subrouter()
	patientsWorker.Use(r.authMiddleware.Authenticate)
	patientsWorker.Use(middleware.RequireWorker)
	patientsWorker.HandleFunc("/mine", r.patientHandler.MyPatients).Methods(http.MethodGet)
	patientsWorker.HandleFunc("/{id}/sessions", r.sessionHandler.CreateSession).Methods(http.MethodPost)

	// Patient detail and sessions: supervisor, admin or the assigned
	// worker, resolved per record in the usecase.
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPatch)
	patients.HandleFunc("/{id}/sessions", r.sessionHandler.ListPatientSessions).Methods(http.MethodGet)

	// Recording overview (supervisor)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(r.authMiddleware.Authenticate)
	sessions.Use(middleware.RequireSupervisor)
	sessions.HandleFunc("", r.sessionHandler.ListSessions).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (r *Router) serverTime(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"server_time": %d}`, time.Now().UTC().Unix())
}
