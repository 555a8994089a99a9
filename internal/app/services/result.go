package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// genericFailureMessage hides persistence details from the user; the
// caller may simply resubmit the request.
const genericFailureMessage = "The operation could not be completed. Please try again."

// failureResult converts an error raised inside a workflow operation
// into the OperationResult handed to the presentation layer. Domain
// errors keep their message (and field, for validation failures);
// anything else is logged and replaced with a generic retry message.
func failureResult(err error, logger zerolog.Logger) models.OperationResult {
	if errors.Is(err, apperrors.ErrNoGradeLevel) {
		return models.FailResult("The student has no aspired grade level.")
	}
	if !apperrors.IsDomainError(err) {
		logger.Error().Err(err).Msg("Operation failed")
		return models.FailResult(genericFailureMessage)
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return models.OperationResult{
			Success:    false,
			Message:    ve.Message,
			FieldError: ve.Field,
		}
	}

	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		return models.FailResult(fmt.Sprintf("%s was not found.", nf.Entity))
	}

	var is *apperrors.InvalidStateError
	if errors.As(err, &is) {
		return models.FailResult(fmt.Sprintf(
			"The operation is not allowed: the current status is %s.", is.Current))
	}

	var ce *apperrors.CapacityExceededError
	if errors.As(err, &ce) {
		return models.FailResult(fmt.Sprintf(
			"The limit of %d for %s has been reached.", ce.Limit, ce.Entity))
	}

	var mr *apperrors.MissingRelationError
	if errors.As(err, &mr) {
		return models.FailResult(fmt.Sprintf("The %s's %s is missing.", mr.Entity, mr.Relation))
	}

	// IsDomainError and the cases above cover the same set; reaching
	// here means a typed error was added without a mapping.
	logger.Error().Err(err).Msg("Unmapped domain error")
	return models.FailResult(genericFailureMessage)
}
