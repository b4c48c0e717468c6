package dto

import "time"

type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            int    `json:"age" validate:"required,gte=0,lte=120"`
	Gender         string `json:"gender" validate:"required"`
	District       string `json:"district,omitempty"`
	BlockNo        string `json:"block_no,omitempty"`
	WardNo         string `json:"ward_no,omitempty"`
	RCHID          string `json:"rch_id,omitempty"`
	PregnancyState string `json:"pregnancy_state,omitempty" validate:"omitempty,oneof=ANC PNC"`
	Contact        string `json:"contact,omitempty"`
	Address        string `json:"address,omitempty"`

	HighRisk            bool    `json:"high_risk"`
	HighRiskDescription *string `json:"high_risk_description,omitempty"`

	AssignedASHAID *string `json:"assigned_ashaid,omitempty"`
}

// UpdatePatientRequest is the whitelisted partial update. patient_id,
// created_by and created_at have no fields here, so callers supplying
// them are silently ignored at decode time.
type UpdatePatientRequest struct {
	Name           *string `json:"name,omitempty"`
	Age            *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Gender         *string `json:"gender,omitempty"`
	District       *string `json:"district,omitempty"`
	BlockNo        *string `json:"block_no,omitempty"`
	WardNo         *string `json:"ward_no,omitempty"`
	RCHID          *string `json:"rch_id,omitempty"`
	PregnancyState *string `json:"pregnancy_state,omitempty" validate:"omitempty,oneof=ANC PNC"`
	Contact        *string `json:"contact,omitempty"`
	Address        *string `json:"address,omitempty"`

	HighRisk            *bool   `json:"high_risk,omitempty"`
	HighRiskDescription *string `json:"high_risk_description,omitempty"`
}

type AssignWorkerRequest struct {
	ASHAID string `json:"asha_id" validate:"required"`
}

type CreatePatientResponse struct {
	PatientID string `json:"patient_id"`
}

type PatientResponse struct {
	PatientID           string     `json:"patient_id"`
	Name                string     `json:"name"`
	Age                 int        `json:"age"`
	Gender              string     `json:"gender"`
	District            string     `json:"district,omitempty"`
	BlockNo             string     `json:"block_no,omitempty"`
	WardNo              string     `json:"ward_no,omitempty"`
	RCHID               string     `json:"rch_id,omitempty"`
	PregnancyState      string     `json:"pregnancy_state,omitempty"`
	Contact             string     `json:"contact,omitempty"`
	Address             string     `json:"address,omitempty"`
	HighRisk            bool       `json:"high_risk"`
	HighRiskDescription *string    `json:"high_risk_description,omitempty"`
	AssignedASHAID      *string    `json:"assigned_ashaid"`
	CreatedBy           string     `json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
	LastUpdated         *time.Time `json:"last_updated,omitempty"`
}
