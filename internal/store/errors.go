package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrInvalidState = errors.New("invalid state for this action")

	// Appointment slot conflicts, both match ErrConflict.
	ErrPatientSlotTaken = fmt.Errorf("%w: patient already booked this slot", ErrConflict)
	ErrDoctorSlotTaken  = fmt.Errorf("%w: doctor already booked this slot", ErrConflict)
)
