package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
)

// credentialNotice carries the data for the post-commit credential
// email. It is filled inside the transaction and dispatched after a
// successful commit; a delivery failure never reverses the admission.
type credentialNotice struct {
	Email    string
	FullName string
	Username string
	Password string
	RoleName string
}

// AdmissionService orchestrates the approval and rejection of
// individual students: it applies the domain transition, cascades the
// derived guardian and preinscription statuses, places approved
// students into groups, issues or revokes guardian credentials and
// persists everything in one transaction.
type AdmissionService struct {
	store       repositories.IStore
	assignments *AssignmentService
	credentials *CredentialService
	notifier    NotificationSender
	logger      zerolog.Logger
}

// NotificationSender delivers generated credentials out of band.
type NotificationSender interface {
	SendCredentials(toEmail, fullName, username, password, roleName string) bool
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(
	store repositories.IStore,
	assignments *AssignmentService,
	credentials *CredentialService,
	notifier NotificationSender,
	logger zerolog.Logger,
) *AdmissionService {
	return &AdmissionService{
		store:       store,
		assignments: assignments,
		credentials: credentials,
		notifier:    notifier,
		logger:      logger,
	}
}

// ApproveStudent approves a single pending student. On success the
// student is placed into a group, the guardian and preinscription
// aggregate statuses are recomputed, and a credential is issued the
// first time the guardian turns Approved. All changes commit in one
// transaction; any domain failure rolls everything back.
func (s *AdmissionService) ApproveStudent(ctx context.Context, studentID int64) models.OperationResult {
	var message string
	var notice *credentialNotice

	err := s.store.InTx(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		// Lock the student row first; a concurrent approval of the same
		// student then observes the terminal state and fails.
		if _, err := r.Students.GetByIDForUpdate(ctx, studentID); err != nil {
			return err
		}

		pre, err := r.Preinscriptions.GetByStudentID(ctx, studentID)
		if err != nil {
			return err
		}
		guardian := pre.Guardian

		firstApproval, err := pre.ApproveStudent(studentID)
		if err != nil {
			return err
		}

		student := studentByID(pre.Students, studentID)
		group, err := s.assignments.Assign(ctx, r, student)
		if err != nil {
			return err
		}

		if firstApproval && guardian.CredentialID == nil {
			credential, password, err := s.credentials.Issue(ctx, r.Credentials, guardian.Person, models.RoleGuardian)
			if err != nil {
				return err
			}
			guardian.CredentialID = &credential.ID
			notice = &credentialNotice{
				Email:    guardian.Email,
				FullName: guardian.FullName(),
				Username: credential.Username,
				Password: password,
				RoleName: models.RoleGuardian.DisplayName(),
			}
		}

		if err := r.Students.Update(ctx, student); err != nil {
			return err
		}
		if err := r.Guardians.Update(ctx, guardian); err != nil {
			return err
		}
		if err := r.Preinscriptions.UpdateStatus(ctx, pre.ID, pre.Status); err != nil {
			return err
		}

		message = composeApprovalMessage(student, group, pre)
		return nil
	})
	if err != nil {
		return failureResult(err, s.logger)
	}

	s.dispatchNotice(notice)
	return models.OkResult(message)
}

// RejectStudent rejects a single pending student. The student keeps no
// group; when the rejection leaves every student of the preinscription
// rejected, the guardian's credential (if any) is revoked.
func (s *AdmissionService) RejectStudent(ctx context.Context, studentID int64) models.OperationResult {
	var message string

	err := s.store.InTx(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := r.Students.GetByIDForUpdate(ctx, studentID); err != nil {
			return err
		}

		pre, err := r.Preinscriptions.GetByStudentID(ctx, studentID)
		if err != nil {
			return err
		}
		guardian := pre.Guardian

		allRejected, err := pre.RejectStudent(studentID)
		if err != nil {
			return err
		}

		revoked := false
		if allRejected && guardian.CredentialID != nil {
			if err := r.Credentials.Deactivate(ctx, *guardian.CredentialID); err != nil {
				return err
			}
			guardian.CredentialID = nil
			revoked = true
		}

		student := studentByID(pre.Students, studentID)
		if err := r.Students.Update(ctx, student); err != nil {
			return err
		}
		if err := r.Guardians.Update(ctx, guardian); err != nil {
			return err
		}
		if err := r.Preinscriptions.UpdateStatus(ctx, pre.ID, pre.Status); err != nil {
			return err
		}

		message = composeRejectionMessage(student, pre, allRejected, revoked)
		return nil
	})
	if err != nil {
		return failureResult(err, s.logger)
	}

	return models.OkResult(message)
}

// dispatchNotice sends the credential email after commit. Failures are
// logged only.
func (s *AdmissionService) dispatchNotice(notice *credentialNotice) {
	if notice == nil {
		return
	}
	if !s.notifier.SendCredentials(notice.Email, notice.FullName, notice.Username, notice.Password, notice.RoleName) {
		s.logger.Error().Str("email", notice.Email).Msg("Credential notification was not accepted for delivery")
	}
}

// studentByID returns the student with the given id from a loaded set.
// The orchestrator only calls it after the domain operation succeeded,
// so the student is present.
func studentByID(students []*models.Student, id int64) *models.Student {
	for _, st := range students {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// composeApprovalMessage builds the human-readable outcome of an
// approval: the base message, plus either a remaining-pending note or,
// once nothing is pending and the guardian holds a credential, a
// credentials-issued note.
func composeApprovalMessage(student *models.Student, group *models.Group, pre *models.Preinscription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student %s was approved and placed in group %s.", student.FullName(), group.Name)

	pending := pre.PendingCount()
	switch {
	case pending > 0:
		fmt.Fprintf(&b, " %d student(s) of this preinscription remain pending.", pending)
	case pre.Guardian != nil && pre.Guardian.CredentialID != nil:
		b.WriteString(" Access credentials were issued and sent to the guardian.")
	}
	return b.String()
}

// composeRejectionMessage builds the outcome of a rejection, with
// variants for fully rejected, partially resolved and still-pending
// preinscriptions.
func composeRejectionMessage(student *models.Student, pre *models.Preinscription, allRejected, revoked bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student %s was rejected.", student.FullName())

	pending := pre.PendingCount()
	switch {
	case allRejected && revoked:
		b.WriteString(" All students of this preinscription were rejected; the guardian's access credentials were revoked.")
	case allRejected:
		b.WriteString(" All students of this preinscription were rejected.")
	case pending > 0:
		fmt.Fprintf(&b, " %d student(s) of this preinscription remain pending.", pending)
	default:
		b.WriteString(" No students of this preinscription remain pending.")
	}
	return b.String()
}
