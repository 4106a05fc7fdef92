package db

import (
	"database/sql"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// Slot statuses.
const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotCancelled = "cancelled"
)

func ValidSlotStatus(s string) bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotCancelled:
		return true
	}
	return false
}

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type User struct {
	ID           int
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type Slot struct {
	ID          int
	TutorID     int
	Subject     string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	Location    sql.NullString
	Description sql.NullString
	Status      string
	CreatedAt   time.Time
}

type Booking struct {
	ID        int
	Code      string
	SlotID    int
	StudentID int
	Status    string
	CreatedAt time.Time
}
