package api

// Auth
type TokenRequest struct {
	GrantType string `json:"grant_type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Slots
type CreateSlotRequest struct {
	Subject     string  `json:"subject"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Capacity    int     `json:"capacity"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

type CreateSlotResponse struct {
	ID int `json:"id"`
}

type UpdateSlotRequest struct {
	Subject     *string `json:"subject"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Capacity    *int    `json:"capacity"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type UpdateSlotResponse struct {
	Updated int64 `json:"updated"`
}

type BookSlotResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
