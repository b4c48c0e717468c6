package dto

import "time"

// CreateSessionRequest is assembled from multipart form fields; the
// recording itself arrives as the "file" part.
type CreateSessionRequest struct {
	SessionNumber int      `json:"session_number" validate:"required,gte=1"`
	Notes         string   `json:"notes,omitempty"`
	Score         *float64 `json:"score,omitempty" validate:"omitempty,gte=0"`
}

type SessionResponse struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	ASHAID        string    `json:"asha_id"`
	SessionNumber int       `json:"session_number"`
	Notes         string    `json:"notes,omitempty"`
	RecordingURL  string    `json:"recording_url,omitempty"`
	Score         *float64  `json:"score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
