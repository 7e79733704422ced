package gormstore

import (
	"errors"
	"fmt"
	"testing"

	"asha-backend/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), store.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), store.ErrConflict)

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointment_slot"}
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", pgErr)), store.ErrConflict)

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
}

func TestAllModels_CoversEveryTable(t *testing.T) {
	names := map[string]bool{}
	for _, m := range AllModels() {
		if tn, ok := m.(interface{ TableName() string }); ok {
			names[tn.TableName()] = true
		}
	}
	for _, table := range []string{"users", "patient", "doctors", "patient_queue", "notifications"} {
		assert.True(t, names[table], table)
	}
}
