package routes

import (
	"github.com/gorilla/mux"

	"github.com/Buzzy89/client/handlers"
)

func CreateAuthRoutes(d *handlers.Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/login", handlers.LoginPage(d)).Methods("GET")
	router.HandleFunc("/login", handlers.Login(d)).Methods("POST")
	router.HandleFunc("/register", handlers.RegisterPage(d)).Methods("GET")
	router.HandleFunc("/register", handlers.Register(d)).Methods("POST")
	router.HandleFunc("/logout", handlers.Logout(d)).Methods("POST")

	return router
}
