package services

import (
	"errors"

	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

// storeError turns a store error into the AppError a handler renders.
// AppErrors pass through untouched.
func storeError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFoundError(notFound)
	case errors.Is(err, store.ErrConflict):
		return utils.ConflictError("Record already exists")
	case errors.Is(err, store.ErrInvalidState):
		return utils.ConflictError("Action not allowed in the current state")
	default:
		return utils.InternalError("Internal Server Error", err)
	}
}
