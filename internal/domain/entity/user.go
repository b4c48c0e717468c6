package entity

import "time"

// User is a stored account document. Supervisors and admins are keyed by
// phone number; workers are keyed by their generated ASHAID.
type User struct {
	UID             string `json:"uid"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	ASHAID          string `json:"asha_id,omitempty"`
	SupervisorPhone string `json:"supervisor_phone,omitempty"`

	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Location          string `json:"location,omitempty"`
	District          string `json:"district,omitempty"`
	Tehsil            string `json:"tehsil,omitempty"`
	HealthFacility    string `json:"health_facility,omitempty"`
	EmployeeID        string `json:"employee_id,omitempty"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty"`

	IsActive         bool       `json:"is_active"`
	FirstLogin       bool       `json:"first_login"`
	ProfileCompleted bool       `json:"profile_completed"`
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
}

// Key returns the user's document key.
func (u *User) Key() string {
	if u.ASHAID != "" {
		return u.ASHAID
	}
	return u.Phone
}
