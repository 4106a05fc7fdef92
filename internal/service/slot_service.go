package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutortribe/internal/db"
	"tutortribe/internal/entities"
	"tutortribe/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNotOwner     = errors.New("not the slot owner")
	ErrNotAvailable = errors.New("slot is not available")
)

// Notifier delivers best-effort booking notifications.
type Notifier interface {
	BookingConfirmed(toEmail, code string, slot *db.Slot)
}

type SlotService struct {
	slots    repository.SlotRepository
	bookings repository.BookingRepository
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewSlotService(slots repository.SlotRepository, bookings repository.BookingRepository, notifier Notifier, log *zap.SugaredLogger) *SlotService {
	return &SlotService{
		slots:    slots,
		bookings: bookings,
		notifier: notifier,
		log:      log,
	}
}

// CreateSlot stores a new slot for the tutor. New slots are always available.
func (s *SlotService) CreateSlot(tutorID int, subject string, start, end time.Time, capacity int, location, description *string) (int, error) {
	if capacity <= 0 {
		capacity = 1
	}
	slot := &db.Slot{
		TutorID:     tutorID,
		Subject:     subject,
		StartTime:   start,
		EndTime:     end,
		Capacity:    capacity,
		Location:    toNullString(location),
		Description: toNullString(description),
		Status:      db.SlotAvailable,
	}
	return s.slots.Create(slot)
}

func (s *SlotService) GetSlot(id int) (*entities.SlotResponse, error) {
	slot, err := s.slots.GetByID(id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	return toSlotResponse(slot), nil
}

func (s *SlotService) ListSlots(tutorID int, status string) ([]entities.SlotResponse, error) {
	slots, err := s.slots.List(tutorID, status)
	if err != nil {
		return nil, err
	}
	out := make([]entities.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *toSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *SlotService) AvailableSlots() ([]entities.SlotWithTutor, error) {
	return s.slots.ListAvailable()
}

// SearchSlots runs the free-text search. The date argument is only consulted
// when filterType is "date".
func (s *SlotService) SearchSlots(term, filterType, date string) ([]entities.SlotWithTutor, error) {
	filterValue := ""
	if filterType == "date" {
		filterValue = date
	}
	return s.slots.Search(term, filterType, filterValue)
}

// UpdateSlot applies a partial update after checking the slot exists and the
// caller owns it. Returns the number of rows changed.
func (s *SlotService) UpdateSlot(id, userID int, upd repository.SlotUpdate) (int64, error) {
	slot, err := s.slots.GetByID(id)
	if err != nil {
		return 0, err
	}
	if slot == nil {
		return 0, ErrNotFound
	}
	if slot.TutorID != userID {
		return 0, ErrNotOwner
	}
	return s.slots.Update(id, upd)
}

// BookSlot transitions an available slot to booked and records a confirmed
// booking row. The status check and the flip happen in one conditional update,
// so concurrent bookings of the same slot cannot both succeed.
func (s *SlotService) BookSlot(slotID, studentID int, studentEmail string) (string, error) {
	slot, err := s.slots.GetByID(slotID)
	if err != nil {
		return "", err
	}
	if slot == nil {
		return "", ErrNotFound
	}
	if slot.Status != db.SlotAvailable {
		return "", ErrNotAvailable
	}

	code := uuid.NewString()
	booked, err := s.bookings.BookSlot(slotID, studentID, code)
	if err != nil {
		return "", err
	}
	if !booked {
		return "", ErrNotAvailable
	}

	s.log.Infow("slot booked", "slot_id", slotID, "student_id", studentID, "code", code)
	if s.notifier != nil {
		s.notifier.BookingConfirmed(studentEmail, code, slot)
	}
	return code, nil
}

func toSlotResponse(slot *db.Slot) *entities.SlotResponse {
	resp := &entities.SlotResponse{
		ID:        slot.ID,
		TutorID:   slot.TutorID,
		Subject:   slot.Subject,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Capacity:  slot.Capacity,
		Status:    slot.Status,
	}
	if slot.Location.Valid {
		resp.Location = &slot.Location.String
	}
	if slot.Description.Valid {
		resp.Description = &slot.Description.String
	}
	return resp
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
