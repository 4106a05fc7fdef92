package repository

import (
	"database/sql"
	"fmt"

	"tutortribe/internal/db"
	"tutortribe/internal/entities"
)

type BookingRepository interface {
	// BookSlot flips the slot to booked and records the booking in one
	// transaction. Returns false when the slot was no longer available.
	BookSlot(slotID, studentID int, code string) (bool, error)
	ListBookings() ([]entities.BookingResponse, error)
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(conn *sql.DB) BookingRepository {
	return &bookingRepository{db: conn}
}

func (r *bookingRepository) BookSlot(slotID, studentID int, code string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE slots SET status = $1 WHERE id = $2 AND status = $3`,
		db.SlotBooked, slotID, db.SlotAvailable,
	)
	if err != nil {
		return false, fmt.Errorf("error booking slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Lost the race: someone booked it between our read and this update.
		return false, nil
	}

	_, err = tx.Exec(
		`INSERT INTO bookings (code, slot_id, student_id, status) VALUES ($1, $2, $3, $4)`,
		code, slotID, studentID, db.BookingConfirmed,
	)
	if err != nil {
		return false, fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing booking: %w", err)
	}
	return true, nil
}

func (r *bookingRepository) ListBookings() ([]entities.BookingResponse, error) {
	query := `
		SELECT b.id, b.code, b.slot_id, stu.username, tut.username, b.status, b.created_at
		FROM bookings b
		JOIN users stu ON b.student_id = stu.id
		JOIN slots s ON b.slot_id = s.id
		JOIN users tut ON s.tutor_id = tut.id
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(&b.ID, &b.Code, &b.SlotID, &b.Student, &b.Tutor, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
