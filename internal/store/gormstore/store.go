package gormstore

import (
	"context"
	"errors"
	"fmt"

	"asha-backend/internal/models"
	"asha-backend/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Store implements store.Store on top of an injected gorm pool.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AllModels lists every relational table, in dependency order for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.AshaWorker{},
		&models.SupervisorDetails{},
		&models.LHVDetails{},
		&models.Patient{},
		&models.Doctor{},
		&models.Chemist{},
		&models.QueueEntry{},
		&models.Consultation{},
		&models.PrescriptionItem{},
		&models.Appointment{},
		&models.Notice{},
		&models.Notification{},
		&models.DeviceToken{},
		&models.Survey{},
		&models.PatientQuery{},
	}
}

// Migrate creates missing tables and columns. Legacy patient rows with no
// family head are rewritten to point at themselves first, so supreme_id can
// be NOT NULL.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if db.Migrator().HasTable(&models.Patient{}) {
		if err := db.Exec(
			"UPDATE patient SET supreme_id = patient_id WHERE supreme_id IS NULL OR supreme_id = 0",
		).Error; err != nil {
			return fmt.Errorf("normalize supreme_id: %w", err)
		}
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
