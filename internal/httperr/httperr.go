// Package httperr maps store-level errors onto fiber errors with the right
// status codes. Client-caused errors (validation, duplicate slot, unknown id)
// surface verbatim; anything else falls through to the app error handler,
// which logs it and answers with a generic 500.
package httperr

import (
	"errors"

	"slotfinder-backend/internal/storage"
	"slotfinder-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func ToFiber(err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return fiber.NewError(fiber.StatusBadRequest, ve.Message)
	}
	var de *storage.DuplicateLocationError
	if errors.As(err, &de) {
		return fiber.NewError(fiber.StatusBadRequest, de.Error())
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Record not found")
	}
	return err
}
