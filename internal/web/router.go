package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *WebHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.PathPrefix("/static/").Handler(staticHandler()).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")

	// Login view
	r.HandleFunc("/", h.LoginPage).Methods("GET")
	r.HandleFunc("/", h.Login).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")

	protected := r.NewRoute().Subrouter()
	protected.Use(h.guard.Require)
	protected.HandleFunc("/list", h.List).Methods("GET")
	protected.HandleFunc("/list/export.xlsx", h.Export).Methods("GET")
	protected.HandleFunc("/details/{id:[0-9]+}", h.Details).Methods("GET")
	protected.HandleFunc("/photo", h.Photo).Methods("GET")
	protected.HandleFunc("/photo", h.SavePhoto).Methods("POST")
	protected.HandleFunc("/graph", h.Graph).Methods("GET")
	protected.HandleFunc("/map", h.Map).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}
