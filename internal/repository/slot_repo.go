package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tutortribe/internal/db"
	"tutortribe/internal/entities"
)

// SlotUpdate carries a partial set of slot fields. Nil means "leave as is".
type SlotUpdate struct {
	Subject     *string
	StartTime   *time.Time
	EndTime     *time.Time
	Capacity    *int
	Location    *string
	Description *string
	Status      *string
}

type SlotRepository interface {
	Create(slot *db.Slot) (int, error)
	GetByID(id int) (*db.Slot, error)
	List(tutorID int, status string) ([]db.Slot, error)
	ListAvailable() ([]entities.SlotWithTutor, error)
	Search(term, filterType, filterValue string) ([]entities.SlotWithTutor, error)
	Update(id int, upd SlotUpdate) (int64, error)
	CancelExpired(now time.Time) (int64, error)
}

type slotRepository struct {
	db *sql.DB
}

func NewSlotRepository(conn *sql.DB) SlotRepository {
	return &slotRepository{db: conn}
}

const slotColumns = `id, tutor_id, subject, start_time, end_time, capacity, location, description, status, created_at`

func (r *slotRepository) Create(slot *db.Slot) (int, error) {
	query := `
		INSERT INTO slots (tutor_id, subject, start_time, end_time, capacity, location, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int
	err := r.db.QueryRow(query,
		slot.TutorID,
		slot.Subject,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.Location,
		slot.Description,
		slot.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting slot: %w", err)
	}
	return id, nil
}

func (r *slotRepository) GetByID(id int) (*db.Slot, error) {
	var s db.Slot
	err := r.db.QueryRow(`SELECT `+slotColumns+` FROM slots WHERE id = $1`, id).Scan(
		&s.ID, &s.TutorID, &s.Subject, &s.StartTime, &s.EndTime,
		&s.Capacity, &s.Location, &s.Description, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying slot: %w", err)
	}
	return &s, nil
}

func (r *slotRepository) List(tutorID int, status string) ([]db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if tutorID != 0 {
		query += " AND tutor_id = $" + strconv.Itoa(idx)
		args = append(args, tutorID)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY start_time ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var s db.Slot
		err := rows.Scan(&s.ID, &s.TutorID, &s.Subject, &s.StartTime, &s.EndTime,
			&s.Capacity, &s.Location, &s.Description, &s.Status, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

const slotWithTutorColumns = `
	s.id, s.tutor_id, u.username, s.subject, s.start_time, s.end_time,
	s.capacity, s.location, s.description, s.status`

func (r *slotRepository) ListAvailable() ([]entities.SlotWithTutor, error) {
	query := `
		SELECT ` + slotWithTutorColumns + `
		FROM slots s
		LEFT JOIN users u ON s.tutor_id = u.id
		WHERE s.status = $1
		ORDER BY s.start_time ASC`

	rows, err := r.db.Query(query, db.SlotAvailable)
	if err != nil {
		return nil, fmt.Errorf("error listing available slots: %w", err)
	}
	defer rows.Close()
	return scanSlotsWithTutor(rows)
}

// Search filters by a free-text term or, for the date mode, by the calendar
// date of the start time. Unknown filter types fall through to an unfiltered
// listing, matching the behaviour callers already depend on.
func (r *slotRepository) Search(term, filterType, filterValue string) ([]entities.SlotWithTutor, error) {
	query := `
		SELECT ` + slotWithTutorColumns + `
		FROM slots s
		LEFT JOIN users u ON s.tutor_id = u.id
		WHERE 1=1`
	args := []interface{}{}

	switch {
	case filterType == "all" && term != "":
		query += ` AND (s.subject ILIKE $1 OR s.location ILIKE $1 OR u.username ILIKE $1)`
		args = append(args, "%"+term+"%")
	case filterType == "name" && term != "":
		query += ` AND u.username ILIKE $1`
		args = append(args, "%"+term+"%")
	case filterType == "subject" && term != "":
		query += ` AND s.subject ILIKE $1`
		args = append(args, "%"+term+"%")
	case filterType == "date" && filterValue != "":
		query += ` AND DATE(s.start_time) = $1::date`
		args = append(args, filterValue)
	}
	query += ` ORDER BY s.start_time ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching slots: %w", err)
	}
	defer rows.Close()
	return scanSlotsWithTutor(rows)
}

func scanSlotsWithTutor(rows *sql.Rows) ([]entities.SlotWithTutor, error) {
	var slots []entities.SlotWithTutor
	for rows.Next() {
		var s entities.SlotWithTutor
		var tutorName, location, description sql.NullString
		err := rows.Scan(&s.ID, &s.TutorID, &tutorName, &s.Subject, &s.StartTime,
			&s.EndTime, &s.Capacity, &location, &description, &s.Status)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		s.TutorName = tutorName.String
		if location.Valid {
			s.Location = &location.String
		}
		if description.Valid {
			s.Description = &description.String
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *slotRepository) Update(id int, upd SlotUpdate) (int64, error) {
	fields := []string{}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		fields = append(fields, column+" = $"+strconv.Itoa(idx))
		args = append(args, value)
		idx++
	}

	if upd.Subject != nil {
		add("subject", *upd.Subject)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}

	if len(fields) == 0 {
		return 0, nil
	}

	query := "UPDATE slots SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(idx)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("error updating slot: %w", err)
	}
	return result.RowsAffected()
}

func (r *slotRepository) CancelExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE slots SET status = $1 WHERE status = $2 AND end_time < $3`,
		db.SlotCancelled, db.SlotAvailable, now,
	)
	if err != nil {
		return 0, fmt.Errorf("error cancelling expired slots: %w", err)
	}
	return result.RowsAffected()
}
