package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tutortribe/internal/auth"
	"tutortribe/internal/db"
	"tutortribe/internal/entities"
	"tutortribe/internal/repository"
	"tutortribe/internal/service"
)

type SlotHandler struct {
	service *service.SlotService
	env     string
}

func NewSlotHandler(svc *service.SlotService, env string) *SlotHandler {
	return &SlotHandler{service: svc, env: env}
}

// parseTime accepts RFC3339 and the bare local form the frontend sends.
func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", v)
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Subject == "" || req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Missing required fields")
		return
	}

	start, err := parseTime(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid startTime format")
		return
	}
	end, err := parseTime(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid endTime format")
		return
	}

	id, err := h.service.CreateSlot(ident.ID, req.Subject, start, end, req.Capacity, req.Location, req.Description)
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSlotResponse{ID: id})
}

func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	slot, err := h.service.GetSlot(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "")
			return
		}
		writeServerError(w, h.env, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	tutorID := 0
	if v := r.URL.Query().Get("tutorId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "tutorId must be a number")
			return
		}
		tutorID = n
	}
	status := r.URL.Query().Get("status")

	slots, err := h.service.ListSlots(tutorID, status)
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *SlotHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.AvailableSlots()
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	if slots == nil {
		slots = []entities.SlotWithTutor{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// SearchSlots surfaces an empty result as 404, not an empty 200 list. Clients
// rely on that.
func (h *SlotHandler) SearchSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("searchTerm")
	filterType := q.Get("filterType")
	if filterType == "" {
		filterType = "all"
	}

	slots, err := h.service.SearchSlots(term, filterType, q.Get("date"))
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	if len(slots) == 0 {
		writeError(w, http.StatusNotFound, "not_found", "No slots found matching your criteria")
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Status != nil && !db.ValidSlotStatus(*req.Status) {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid status value")
		return
	}

	upd := repository.SlotUpdate{
		Subject:     req.Subject,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.StartTime != nil {
		t, err := parseTime(*req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Invalid startTime format")
			return
		}
		upd.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := parseTime(*req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Invalid endTime format")
			return
		}
		upd.EndTime = &t
	}

	changed, err := h.service.UpdateSlot(id, ident.ID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "forbidden", "Not the slot owner")
		default:
			writeServerError(w, h.env, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, UpdateSlotResponse{Updated: changed})
}

func (h *SlotHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	code, err := h.service.BookSlot(id, ident.ID, ident.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Slot not found")
		case errors.Is(err, service.ErrNotAvailable):
			writeError(w, http.StatusBadRequest, "invalid_request", "Slot is not available for booking")
		default:
			writeServerError(w, h.env, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, BookSlotResponse{
		Success: true,
		Message: "Slot booked successfully",
		Code:    code,
	})
}

func (h *SlotHandler) MySlots(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	slots, err := h.service.ListSlots(ident.ID, "")
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *SlotHandler) AllSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.ListSlots(0, "")
	if err != nil {
		writeServerError(w, h.env, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}
