package services

import (
	"context"
	"errors"
	"fmt"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

// Uploader stores a profile picture and returns its public URL.
type Uploader interface {
	Enabled() bool
	Upload(ctx context.Context, file interface{}, publicID string) (string, error)
}

type ProfileService struct {
	store    store.Store
	family   *FamilyService
	uploader Uploader
}

func NewProfileService(st store.Store, family *FamilyService, uploader Uploader) *ProfileService {
	return &ProfileService{store: st, family: family, uploader: uploader}
}

func (s *ProfileService) AshaProfile(ctx context.Context, actor Actor) (models.AshaProfile, error) {
	worker, err := s.store.GetAshaByUserID(ctx, actor.UserID)
	if err != nil {
		return models.AshaProfile{}, storeError(err, "ASHA profile not found")
	}
	return models.AshaProfile{AshaWorker: worker, Role: actor.Role}, nil
}

// UpdateAshaProfile changes phone, password or picture. Other fields stay
// as registered.
func (s *ProfileService) UpdateAshaProfile(ctx context.Context, actor Actor, input models.UpdateAshaProfileInput) (models.AshaProfile, error) {
	if input.Empty() {
		return models.AshaProfile{}, utils.ValidationError("Provide phone, password or profile_pic to update")
	}

	var hash string
	if input.Password != "" {
		h, err := utils.HashPassword(input.Password)
		if err != nil {
			return models.AshaProfile{}, utils.InternalError("Failed to hash password", err)
		}
		hash = h
	}
	if input.Phone != "" || hash != "" {
		if err := s.store.UpdateUserCredentials(ctx, actor.UserID, input.Phone, hash); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return models.AshaProfile{}, utils.ConflictError("Phone number already registered")
			}
			return models.AshaProfile{}, storeError(err, "User not found")
		}
	}
	if input.ProfilePic != "" {
		if err := s.store.UpdateAshaProfilePic(ctx, actor.AshaID, input.ProfilePic); err != nil {
			return models.AshaProfile{}, storeError(err, "ASHA profile not found")
		}
	}
	return s.AshaProfile(ctx, actor)
}

// UploadAshaPicture pushes the file to object storage and saves the URL.
func (s *ProfileService) UploadAshaPicture(ctx context.Context, actor Actor, file interface{}) (string, error) {
	if s.uploader == nil || !s.uploader.Enabled() {
		return "", utils.InternalError("Picture upload is not configured", utils.ErrUploadDisabled)
	}
	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("asha_%d", actor.AshaID))
	if err != nil {
		return "", utils.InternalError("Picture upload failed", err)
	}
	if err := s.store.UpdateAshaProfilePic(ctx, actor.AshaID, url); err != nil {
		return "", storeError(err, "ASHA profile not found")
	}
	return url, nil
}

func (s *ProfileService) PatientsOfAsha(ctx context.Context, actor Actor) ([]models.Patient, error) {
	patients, err := s.store.ListPatientsByAsha(ctx, actor.AshaID)
	if err != nil {
		return nil, storeError(err, "Patients not found")
	}
	if patients == nil {
		patients = []models.Patient{}
	}
	return patients, nil
}

// PatientProfile is the patient row with the family and the enrolling ASHA.
func (s *ProfileService) PatientProfile(ctx context.Context, actor Actor) (models.PatientProfile, error) {
	patient, err := s.store.GetPatient(ctx, actor.PatientID)
	if err != nil {
		return models.PatientProfile{}, storeError(err, "Patient profile not found")
	}
	family, err := s.family.FamilyOf(ctx, patient)
	if err != nil {
		return models.PatientProfile{}, err
	}

	profile := models.PatientProfile{Patient: patient, FamilyProfiles: family}
	if patient.RegisteredAshaID != nil {
		contact, err := s.ashaContact(ctx, *patient.RegisteredAshaID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.PatientProfile{}, storeError(err, "ASHA profile not found")
		}
		profile.AshaWorker = contact
	}
	return profile, nil
}

func (s *ProfileService) ashaContact(ctx context.Context, ashaID uint64) (*models.AshaContact, error) {
	worker, err := s.store.GetAsha(ctx, ashaID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, worker.UserID)
	if err != nil {
		return nil, err
	}
	return &models.AshaContact{
		AshaID:   worker.AshaID,
		AshaName: worker.AshaName,
		Phone:    user.Phone,
		Village:  worker.Village,
		Taluka:   worker.Taluka,
		District: worker.District,
	}, nil
}

func (s *ProfileService) Family(ctx context.Context, actor Actor) ([]models.PatientSummary, error) {
	return s.family.ResolveFamily(ctx, actor.PatientID)
}
