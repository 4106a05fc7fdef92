package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tutortribe/internal/entities"
	"tutortribe/internal/repository"
)

type AdminHandler struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
	env      string
}

func NewAdminHandler(users repository.UserRepository, bookings repository.BookingRepository, env string) *AdminHandler {
	return &AdminHandler{users: users, bookings: bookings, env: env}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}

	out := make([]entities.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, entities.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All users retrieved successfully",
		"users":   out,
	})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListBookings()
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "All bookings retrieved successfully",
		"bookings": bookings,
	})
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	user, err := h.users.GetByID(id)
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}

	created := user.CreatedAt
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("User %d profile retrieved successfully", user.ID),
		"user": entities.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: &created,
		},
	})
}
