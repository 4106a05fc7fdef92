package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"tutortribe/internal/auth"
	"tutortribe/internal/db"
)

// NewRouter wires the full HTTP surface. The authenticate middleware guards
// everything under /api except the login endpoint and the two public slot
// listings.
func NewRouter(authHandler *AuthHandler, slotHandler *SlotHandler, adminHandler *AdminHandler, authenticate func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Public endpoints
	r.HandleFunc("/api/auth/token", authHandler.Token).Methods("POST")
	r.HandleFunc("/api/slots/available", slotHandler.AvailableSlots).Methods("GET")
	r.HandleFunc("/api/slots/search", slotHandler.SearchSlots).Methods("GET")

	// Protected endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authenticate)

	protected.HandleFunc("/slots", slotHandler.ListSlots).Methods("GET")
	protected.HandleFunc("/slots/myslots", auth.RequireRole(slotHandler.MySlots, db.RoleTutor)).Methods("GET")
	protected.HandleFunc("/slots/all", auth.RequireRole(slotHandler.AllSlots, db.RoleAdmin)).Methods("GET")
	protected.HandleFunc("/slots/create", auth.RequireRole(slotHandler.CreateSlot, db.RoleTutor)).Methods("POST")
	protected.HandleFunc("/slots/book/{id:[0-9]+}", auth.RequireRole(slotHandler.BookSlot, db.RoleStudent)).Methods("POST")
	protected.HandleFunc("/slots/{id:[0-9]+}", slotHandler.GetSlot).Methods("GET")
	protected.HandleFunc("/slots/{id:[0-9]+}", auth.RequireRole(slotHandler.UpdateSlot, db.RoleTutor)).Methods("PUT")

	protected.HandleFunc("/admin/users", auth.RequireRole(adminHandler.ListUsers, db.RoleAdmin)).Methods("GET")
	protected.HandleFunc("/admin/bookings", auth.RequireRole(adminHandler.ListBookings, db.RoleAdmin)).Methods("GET")
	protected.HandleFunc("/admin/users/{id:[0-9]+}", auth.RequireRole(adminHandler.GetUser, db.RoleAdmin)).Methods("GET")

	return r
}
