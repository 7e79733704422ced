package services

import (
	"context"
	"errors"
	"strings"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

// LoginResult is what every login route returns.
type LoginResult struct {
	Token          string                  `json:"token"`
	User           models.UserSummary      `json:"user"`
	FamilyProfiles []models.PatientSummary `json:"familyProfiles,omitempty"`
}

type AuthService struct {
	store  store.Store
	tokens *utils.TokenManager
	family *FamilyService
}

func NewAuthService(st store.Store, tokens *utils.TokenManager, family *FamilyService) *AuthService {
	return &AuthService{store: st, tokens: tokens, family: family}
}

// Login checks phone and password. When allowed is non-empty the user must
// hold one of those roles. Patients also get their family profiles back.
func (s *AuthService) Login(ctx context.Context, input models.LoginInput, allowed ...models.Role) (LoginResult, error) {
	user, err := s.store.GetUserByPhone(ctx, strings.TrimSpace(input.Phone))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, utils.AuthError("Invalid phone or password")
		}
		return LoginResult{}, storeError(err, "User not found")
	}
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return LoginResult{}, utils.AuthError("Invalid phone or password")
	}
	if len(allowed) > 0 && !(Actor{Role: user.Role}).Is(allowed...) {
		return LoginResult{}, utils.AuthorizationError("This login is not available for role " + string(user.Role))
	}

	token, err := s.tokens.GenerateToken(utils.Uint64ToString(user.UserID))
	if err != nil {
		return LoginResult{}, utils.InternalError("Failed to generate token", err)
	}

	result := LoginResult{Token: token, User: user.Summary()}
	if user.Role == models.RolePatient {
		patient, err := s.store.GetPatientByUserID(ctx, user.UserID)
		if err != nil {
			return LoginResult{}, storeError(err, "Patient profile not found")
		}
		family, err := s.family.FamilyOf(ctx, patient)
		if err != nil {
			return LoginResult{}, err
		}
		result.FamilyProfiles = family
	}
	return result, nil
}

func (s *AuthService) newUser(name, phone, password string, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}
	return &models.User{
		UserName:     strings.TrimSpace(name),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// registrationError reports a duplicate phone as a conflict.
func registrationError(err error) error {
	if errors.Is(err, store.ErrConflict) {
		return utils.ConflictError("Phone number already registered")
	}
	return storeError(err, "User not found")
}

func (s *AuthService) RegisterSupervisor(ctx context.Context, input models.RegisterWorkerInput) (models.AshaWorker, error) {
	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RoleSupervisor)
	if err != nil {
		return models.AshaWorker{}, err
	}
	worker := models.AshaWorker{
		AshaName: user.UserName,
		Village:  input.Village,
		District: input.District,
		Taluka:   input.Taluka,
	}
	details := models.SupervisorDetails{
		PHCName:  input.PHCName,
		Village:  input.Village,
		District: input.District,
		Taluka:   input.Taluka,
	}
	if err := s.store.CreateSupervisor(ctx, user, &worker, &details); err != nil {
		return models.AshaWorker{}, registrationError(err)
	}
	worker.User = user
	return worker, nil
}

// RegisterAsha enrolls an ASHA worker reporting to the calling supervisor.
func (s *AuthService) RegisterAsha(ctx context.Context, supervisor Actor, input models.RegisterWorkerInput) (models.AshaWorker, error) {
	if supervisor.Role != models.RoleSupervisor || supervisor.AshaID == 0 {
		return models.AshaWorker{}, utils.AuthorizationError("Only supervisors can register ASHA workers")
	}
	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RoleAsha)
	if err != nil {
		return models.AshaWorker{}, err
	}
	supervisorID := supervisor.AshaID
	worker := models.AshaWorker{
		SupervisorID: &supervisorID,
		AshaName:     user.UserName,
		Village:      input.Village,
		District:     input.District,
		Taluka:       input.Taluka,
	}
	if err := s.store.CreateAsha(ctx, user, &worker); err != nil {
		return models.AshaWorker{}, registrationError(err)
	}
	worker.User = user
	return worker, nil
}

// RegisterPatient enrolls a patient under the calling ASHA. Without a
// supreme id the patient heads a new family; with one, the patient joins
// the family that id belongs to.
func (s *AuthService) RegisterPatient(ctx context.Context, asha Actor, input models.RegisterPatientInput) (models.Patient, error) {
	patient := models.Patient{
		PatientName: strings.TrimSpace(input.Name),
		Gender:      input.Gender,
		DOB:         input.DOB,
		Phone:       strings.TrimSpace(input.Phone),
		ProfilePic:  input.ProfilePic,
		Village:     input.Village,
		Taluka:      input.Taluka,
		District:    input.District,
		History:     input.History,
	}
	if asha.AshaID != 0 {
		ashaID := asha.AshaID
		patient.RegisteredAshaID = &ashaID
	}
	if input.SupremeID != nil && *input.SupremeID != 0 {
		head, err := s.store.GetPatient(ctx, *input.SupremeID)
		if err != nil {
			return models.Patient{}, storeError(err, "Family head not found")
		}
		patient.SupremeID = head.CohortHead()
	}

	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RolePatient)
	if err != nil {
		return models.Patient{}, err
	}
	if err := s.store.CreatePatient(ctx, user, &patient); err != nil {
		return models.Patient{}, registrationError(err)
	}
	return patient, nil
}

func (s *AuthService) RegisterLHV(ctx context.Context, input models.RegisterLHVInput) (models.LHVDetails, error) {
	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RoleLHV)
	if err != nil {
		return models.LHVDetails{}, err
	}
	details := models.LHVDetails{
		PHCName:        input.PHCName,
		Village:        input.Village,
		District:       input.District,
		Taluka:         input.Taluka,
		SupervisorName: input.SupervisorName,
	}
	if err := s.store.CreateLHV(ctx, user, &details); err != nil {
		return models.LHVDetails{}, registrationError(err)
	}
	return details, nil
}

func (s *AuthService) RegisterDoctor(ctx context.Context, input models.RegisterDoctorInput) (models.Doctor, error) {
	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RoleDoctor)
	if err != nil {
		return models.Doctor{}, err
	}
	doctor := models.Doctor{
		DocName:          user.UserName,
		DocRole:          input.Role,
		ProfilePic:       input.ProfilePic,
		HospitalAddress:  input.HospitalAddress,
		HospitalVillage:  input.HospitalVillage,
		HospitalTaluka:   input.HospitalTaluka,
		HospitalDistrict: input.HospitalDistrict,
		HospitalState:    input.HospitalState,
		Phone:            user.Phone,
		Speciality:       input.Speciality,
		Status:           models.DoctorStatusOff,
	}
	if err := s.store.CreateDoctor(ctx, user, &doctor); err != nil {
		return models.Doctor{}, registrationError(err)
	}
	return doctor, nil
}

func (s *AuthService) RegisterChemist(ctx context.Context, input models.RegisterChemistInput) (models.Chemist, error) {
	user, err := s.newUser(input.Name, input.Phone, input.Password, models.RoleChemist)
	if err != nil {
		return models.Chemist{}, err
	}
	chemist := models.Chemist{
		ChemistName: user.UserName,
		ShopName:    input.ShopName,
		Village:     input.Village,
	}
	if err := s.store.CreateChemist(ctx, user, &chemist); err != nil {
		return models.Chemist{}, registrationError(err)
	}
	return chemist, nil
}
