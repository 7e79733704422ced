package services

import (
	"context"
	"errors"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

type AppointmentService struct {
	store store.Store
}

func NewAppointmentService(st store.Store) *AppointmentService {
	return &AppointmentService{store: st}
}

// Book reserves a slot. The unique slot indexes decide concurrent bookings;
// the loser gets a ConflictError naming whose slot was taken.
func (s *AppointmentService) Book(ctx context.Context, patient Actor, input models.BookAppointmentInput) (models.Appointment, error) {
	if _, err := s.store.GetDoctor(ctx, input.DoctorID); err != nil {
		return models.Appointment{}, storeError(err, "Doctor not found")
	}

	appointment := models.Appointment{
		PatientID:       patient.PatientID,
		DoctorID:        input.DoctorID,
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		Notes:           input.Notes,
	}
	if err := s.store.CreateAppointment(ctx, &appointment); err != nil {
		switch {
		case errors.Is(err, store.ErrPatientSlotTaken):
			return models.Appointment{}, utils.ConflictError("You already have an appointment at this time")
		case errors.Is(err, store.ErrDoctorSlotTaken):
			return models.Appointment{}, utils.ConflictError("Doctor is not available at this time")
		case errors.Is(err, store.ErrConflict):
			return models.Appointment{}, utils.ConflictError("Slot already booked")
		}
		return models.Appointment{}, storeError(err, "Appointment not found")
	}
	return appointment, nil
}

func (s *AppointmentService) List(ctx context.Context, patient Actor) ([]models.Appointment, error) {
	appointments, err := s.store.ListAppointmentsByPatient(ctx, patient.PatientID)
	return appointments, storeError(err, "Appointments not found")
}
