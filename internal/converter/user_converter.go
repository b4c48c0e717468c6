package converter

import (
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

func UserToResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Key:               user.Key(),
		UID:               user.UID,
		Phone:             user.Phone,
		Email:             user.Email,
		Name:              user.Name,
		Role:              string(user.Role),
		ASHAID:            user.ASHAID,
		SupervisorPhone:   user.SupervisorPhone,
		ProfilePictureURL: user.ProfilePictureURL,
		Location:          user.Location,
		District:          user.District,
		Tehsil:            user.Tehsil,
		HealthFacility:    user.HealthFacility,
		EmployeeID:        user.EmployeeID,
		YearsOfExperience: user.YearsOfExperience,
		IsActive:          user.IsActive,
		FirstLogin:        user.FirstLogin,
		ProfileCompleted:  user.ProfileCompleted,
		CreatedAt:         user.CreatedAt,
		LastLogin:         user.LastLogin,
	}
}

func UsersToResponses(users []*entity.User) []*dto.UserResponse {
	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, UserToResponse(user))
	}
	return responses
}
