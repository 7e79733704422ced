package services

import (
	"context"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

// Actor is the caller behind a verified token, with the id of its role row.
// Role ids that do not apply to the role are zero.
type Actor struct {
	UserID       uint64
	Role         models.Role
	AshaID       uint64
	SupervisorID *uint64
	Village      string
	PatientID    uint64
	DoctorID     uint64
	ChemistID    uint64
}

// Is reports whether the actor holds one of roles.
func (a Actor) Is(roles ...models.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

type IdentityService struct {
	store store.Store
}

func NewIdentityService(st store.Store) *IdentityService {
	return &IdentityService{store: st}
}

// ResolveActor maps a token subject onto its role and role row. Read only.
func (s *IdentityService) ResolveActor(ctx context.Context, userID uint64) (Actor, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Actor{}, storeError(err, "User not found")
	}

	actor := Actor{UserID: user.UserID, Role: user.Role}
	switch user.Role {
	case models.RoleAsha, models.RoleSupervisor:
		worker, err := s.store.GetAshaByUserID(ctx, userID)
		if err != nil {
			return Actor{}, storeError(err, "ASHA profile not found")
		}
		actor.AshaID = worker.AshaID
		actor.SupervisorID = worker.SupervisorID
		actor.Village = worker.Village
	case models.RolePatient:
		patient, err := s.store.GetPatientByUserID(ctx, userID)
		if err != nil {
			return Actor{}, storeError(err, "Patient profile not found")
		}
		actor.PatientID = patient.PatientID
		actor.Village = patient.Village
	case models.RoleDoctor:
		doctor, err := s.store.GetDoctorByUserID(ctx, userID)
		if err != nil {
			return Actor{}, storeError(err, "Doctor profile not found")
		}
		actor.DoctorID = doctor.DocID
	case models.RoleChemist:
		chemist, err := s.store.GetChemistByUserID(ctx, userID)
		if err != nil {
			return Actor{}, storeError(err, "Chemist profile not found")
		}
		actor.ChemistID = chemist.ChemistID
	case models.RoleLHV, models.RoleGovt:
		// no role row needed to authorize
	default:
		return Actor{}, utils.AuthorizationError("Unknown role")
	}
	return actor, nil
}

// Authorize resolves the actor and checks it holds one of roles.
func (s *IdentityService) Authorize(ctx context.Context, userID uint64, roles ...models.Role) (Actor, error) {
	actor, err := s.ResolveActor(ctx, userID)
	if err != nil {
		return Actor{}, err
	}
	if len(roles) > 0 && !actor.Is(roles...) {
		return Actor{}, utils.AuthorizationError("Access denied for role " + string(actor.Role))
	}
	return actor, nil
}
