package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/models/dto"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// PreinscriptionService handles the registration of new preinscriptions
// and public status queries by reference code.
type PreinscriptionService struct {
	store               repositories.IStore
	maxStudentsPerGuard int
	logger              zerolog.Logger
}

// NewPreinscriptionService creates a new PreinscriptionService
func NewPreinscriptionService(store repositories.IStore, maxStudentsPerGuardian int, logger zerolog.Logger) *PreinscriptionService {
	return &PreinscriptionService{
		store:               store,
		maxStudentsPerGuard: maxStudentsPerGuardian,
		logger:              logger,
	}
}

// SubmitPreinscription registers a guardian together with their
// students as one pending preinscription. The whole submission is
// atomic: one invalid student discards the guardian and the other
// students as well. On success the payload carries the summary with
// the reference code the guardian uses for status queries.
func (s *PreinscriptionService) SubmitPreinscription(ctx context.Context, req dto.SubmitPreinscriptionRequest) models.OperationResult {
	if len(req.Students) == 0 {
		return models.OperationResult{
			Success:    false,
			Message:    "at least one student is required",
			FieldError: "students",
		}
	}
	if len(req.Students) > s.maxStudentsPerGuard {
		return failureResult(apperrors.NewCapacityExceededError("guardian students", s.maxStudentsPerGuard), s.logger)
	}

	var summary dto.PreinscriptionSummary

	err := s.store.InTx(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		guardian := &models.Guardian{
			Person: models.Person{
				FirstName:      req.Guardian.FirstName,
				MiddleName:     req.Guardian.MiddleName,
				LastName:       req.Guardian.LastName,
				SecondLastName: req.Guardian.SecondLastName,
				Age:            req.Guardian.Age,
				NationalID:     req.Guardian.NationalID,
			},
			Email:  req.Guardian.Email,
			Phone:  req.Guardian.Phone,
			Status: models.StatusPending,
		}
		if err := guardian.Validate(); err != nil {
			return err
		}
		if err := r.Guardians.Create(ctx, guardian); err != nil {
			return mapGuardianConstraint(err)
		}

		pre := &models.Preinscription{
			Reference:    uuid.NewString(),
			RegisteredAt: time.Now(),
			Status:       models.StatusPending,
			GuardianID:   guardian.ID,
			Guardian:     guardian,
		}
		if err := r.Preinscriptions.Create(ctx, pre); err != nil {
			return err
		}

		for i := range req.Students {
			student, err := s.buildStudent(ctx, r, &req.Students[i], pre)
			if err != nil {
				return err
			}
			if err := guardian.AddStudent(student, s.maxStudentsPerGuard); err != nil {
				return err
			}
			if err := r.Students.Create(ctx, student); err != nil {
				if dberrors.IsDuplicateConstraintError(err, "students_national_id_key") {
					return apperrors.NewValidationError("nationalId",
						fmt.Sprintf("a student with national ID %s is already registered", student.NationalID))
				}
				return err
			}
			pre.Students = append(pre.Students, student)
		}

		summary = BuildSummary(pre)
		return nil
	})
	if err != nil {
		return failureResult(err, s.logger)
	}

	s.logger.Info().
		Str("reference", summary.Reference).
		Int("students", len(summary.Students)).
		Msg("Preinscription registered")

	return models.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Preinscription registered with reference %s.", summary.Reference),
		Payload: summary,
	}
}

// GetStatus looks up a preinscription by its reference code and returns
// its summary, including per-student statuses and group placements.
func (s *PreinscriptionService) GetStatus(ctx context.Context, reference string) models.OperationResult {
	pre, err := s.store.Repos().Preinscriptions.GetByReference(ctx, reference)
	if err != nil {
		return failureResult(err, s.logger)
	}

	summary := BuildSummary(pre)
	return models.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Preinscription %s is %s.", pre.Reference, pre.Status),
		Payload: summary,
	}
}

// buildStudent converts one student input into a validated model bound
// to the preinscription, resolving the grade level by name.
func (s *PreinscriptionService) buildStudent(ctx context.Context, r *repositories.Repositories, in *dto.StudentInput, pre *models.Preinscription) (*models.Student, error) {
	level, err := r.GradeLevels.GetByName(ctx, in.GradeLevel)
	if err != nil {
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperrors.NewValidationError("gradeLevel",
				fmt.Sprintf("unknown grade level %q", in.GradeLevel))
		}
		return nil, err
	}

	student := &models.Student{
		Person: models.Person{
			FirstName:      in.FirstName,
			MiddleName:     in.MiddleName,
			LastName:       in.LastName,
			SecondLastName: in.SecondLastName,
			Age:            in.Age,
			NationalID:     in.NationalID,
		},
		Status:           models.StatusPending,
		GradeLevelID:     level.ID,
		GradeLevel:       level,
		PreinscriptionID: pre.ID,
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}
	return student, nil
}

// mapGuardianConstraint translates unique violations on the guardians
// table into field-level validation errors.
func mapGuardianConstraint(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "guardians_national_id_key"):
		return apperrors.NewValidationError("nationalId", "a guardian with this national ID is already registered")
	case dberrors.IsDuplicateConstraintError(err, "guardians_email_key"):
		return apperrors.NewValidationError("email", "a guardian with this email is already registered")
	case dberrors.IsDuplicateConstraintError(err, "guardians_phone_key"):
		return apperrors.NewValidationError("phone", "a guardian with this phone is already registered")
	default:
		return err
	}
}

// BuildSummary flattens a loaded preinscription into the presentation
// payload.
func BuildSummary(pre *models.Preinscription) dto.PreinscriptionSummary {
	summary := dto.PreinscriptionSummary{
		Reference: pre.Reference,
		Status:    string(pre.Status),
	}
	if pre.Guardian != nil {
		summary.GuardianName = pre.Guardian.FullName()
	}
	for _, st := range pre.Students {
		line := dto.StudentSummary{
			ID:       st.ID,
			FullName: st.FullName(),
			Status:   string(st.Status),
		}
		if st.GradeLevel != nil {
			line.GradeName = st.GradeLevel.Name
		}
		if st.Group != nil {
			line.GroupName = st.Group.Name
		}
		summary.Students = append(summary.Students, line)
	}
	return summary
}
