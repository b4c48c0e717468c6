package dto

import "time"

type CreateWorkerRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name" validate:"required"`
	District string `json:"district,omitempty"`
	Tehsil   string `json:"tehsil,omitempty"`
}

type CreateWorkerResponse struct {
	ASHAID string `json:"asha_id"`
}

// UpdateProfileRequest is the whitelisted self-service profile update.
// The document key (phone for supervisors, worker id for workers), role
// and uid are deliberately absent: they cannot be changed here.
type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty"`
	Password          *string `json:"password,omitempty" validate:"omitempty,min=8"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	Location          *string `json:"location,omitempty"`
	District          *string `json:"district,omitempty"`
	HealthFacility    *string `json:"health_facility,omitempty"`
	EmployeeID        *string `json:"employee_id,omitempty"`
	YearsOfExperience *int    `json:"years_of_experience,omitempty" validate:"omitempty,gte=0"`
}

type UserResponse struct {
	Key               string     `json:"key"`
	UID               string     `json:"uid"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email,omitempty"`
	Name              string     `json:"name"`
	Role              string     `json:"role"`
	ASHAID            string     `json:"asha_id,omitempty"`
	SupervisorPhone   string     `json:"supervisor_phone,omitempty"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	Location          string     `json:"location,omitempty"`
	District          string     `json:"district,omitempty"`
	Tehsil            string     `json:"tehsil,omitempty"`
	HealthFacility    string     `json:"health_facility,omitempty"`
	EmployeeID        string     `json:"employee_id,omitempty"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty"`
	IsActive          bool       `json:"is_active"`
	FirstLogin        bool       `json:"first_login"`
	ProfileCompleted  bool       `json:"profile_completed"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}
