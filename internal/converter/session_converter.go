package converter

import (
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:            session.ID,
		PatientID:     session.PatientID,
		ASHAID:        session.ASHAID,
		SessionNumber: session.SessionNumber,
		Notes:         session.Notes,
		RecordingURL:  session.RecordingURL,
		Score:         session.Score,
		CreatedAt:     session.CreatedAt,
	}
}

func SessionsToResponses(sessions []*entity.Session) []*dto.SessionResponse {
	responses := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, SessionToResponse(session))
	}
	return responses
}
