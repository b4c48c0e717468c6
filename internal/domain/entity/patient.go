package entity

import "time"

// Pregnancy state constants
const (
	PregnancyANC = "ANC"
	PregnancyPNC = "PNC"
)

// Patient is a stored patient document, keyed by the generated 8-digit
// PatientID. PatientID, CreatedBy and CreatedAt are read-only after
// creation.
type Patient struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`

	District       string `json:"district,omitempty"`
	BlockNo        string `json:"block_no,omitempty"`
	WardNo         string `json:"ward_no,omitempty"`
	RCHID          string `json:"rch_id,omitempty"`
	PregnancyState string `json:"pregnancy_state,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Address        string `json:"address,omitempty"`

	HighRisk            bool    `json:"high_risk"`
	HighRiskDescription *string `json:"high_risk_description,omitempty"`

	// AssignedASHAID is a weak reference to a worker's document key.
	AssignedASHAID *string `json:"assigned_ashaid"`

	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}
