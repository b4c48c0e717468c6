package entity

import "time"

// Session is a patient-visit record, optionally carrying an audio
// recording reference. SessionNumber is caller-supplied and is not
// validated for per-patient uniqueness.
type Session struct {
	ID            string   `json:"id,omitempty"`
	PatientID     string   `json:"patient_id"`
	ASHAID        string   `json:"asha_id"`
	SessionNumber int      `json:"session_number"`
	Notes         string   `json:"notes,omitempty"`
	RecordingURL  string   `json:"recording_url,omitempty"`
	Score         *float64 `json:"score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
