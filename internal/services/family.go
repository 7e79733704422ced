package services

import (
	"context"
	"sort"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
)

type FamilyService struct {
	store store.Store
}

func NewFamilyService(st store.Store) *FamilyService {
	return &FamilyService{store: st}
}

// ResolveFamily returns every patient sharing the cohort head of patientID,
// the patient itself included, ordered by patient id.
func (s *FamilyService) ResolveFamily(ctx context.Context, patientID uint64) ([]models.PatientSummary, error) {
	patient, err := s.store.GetPatient(ctx, patientID)
	if err != nil {
		return nil, storeError(err, "Patient not found")
	}
	return s.FamilyOf(ctx, patient)
}

// FamilyOf is ResolveFamily for a patient row already loaded.
func (s *FamilyService) FamilyOf(ctx context.Context, patient models.Patient) ([]models.PatientSummary, error) {
	members, err := s.store.ListPatientsBySupreme(ctx, patient.CohortHead())
	if err != nil {
		return nil, storeError(err, "Patient not found")
	}

	// rows not yet normalized by migrate (supreme_id 0) still belong to themselves
	seen := false
	for _, m := range members {
		if m.PatientID == patient.PatientID {
			seen = true
			break
		}
	}
	if !seen {
		members = append(members, patient)
	}

	sort.Slice(members, func(i, j int) bool { return members[i].PatientID < members[j].PatientID })

	family := make([]models.PatientSummary, 0, len(members))
	for _, m := range members {
		family = append(family, m.Summary())
	}
	return family, nil
}
