package entities

import "time"

// SlotResponse is the public projection of a slot row.
type SlotResponse struct {
	ID          int       `json:"id"`
	TutorID     int       `json:"tutorId"`
	Subject     string    `json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
}

// SlotWithTutor adds the owning tutor's display name for listings and search.
type SlotWithTutor struct {
	ID          int       `json:"id"`
	TutorID     int       `json:"tutorId"`
	TutorName   string    `json:"tutorName"`
	Subject     string    `json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
}
