package converter

import (
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		PatientID:           patient.PatientID,
		Name:                patient.Name,
		Age:                 patient.Age,
		Gender:              patient.Gender,
		District:            patient.District,
		BlockNo:             patient.BlockNo,
		WardNo:              patient.WardNo,
		RCHID:               patient.RCHID,
		PregnancyState:      patient.PregnancyState,
		Contact:             patient.Contact,
		Address:             patient.Address,
		HighRisk:            patient.HighRisk,
		HighRiskDescription: patient.HighRiskDescription,
		AssignedASHAID:      patient.AssignedASHAID,
		CreatedBy:           patient.CreatedBy,
		CreatedAt:           patient.CreatedAt,
		LastUpdated:         patient.LastUpdated,
	}
}

func PatientsToResponses(patients []*entity.Patient) []*dto.PatientResponse {
	responses := make([]*dto.PatientResponse, 0, len(patients))
	for _, patient := range patients {
		responses = append(responses, PatientToResponse(patient))
	}
	return responses
}
