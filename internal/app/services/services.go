package services

import (
	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/config"
)

// Services holds all service instances the presentation layer uses
type Services struct {
	Preinscriptions *PreinscriptionService
	Admissions      *AdmissionService
	Auth            *AuthService
}

// NewServices wires the workflow services over one store. The
// assignment and credential services are internal collaborators of the
// admission workflow and are not exposed.
func NewServices(store repositories.IStore, cfg *config.Config, notifier NotificationSender, logger zerolog.Logger) *Services {
	assignments := NewAssignmentService(cfg.Admission.MinGroupSize, cfg.Admission.MaxGroupSize, logger)
	credentials := NewCredentialService(logger)

	return &Services{
		Preinscriptions: NewPreinscriptionService(store, cfg.Admission.MaxStudentsPerGuardian, logger),
		Admissions:      NewAdmissionService(store, assignments, credentials, notifier, logger),
		Auth:            NewAuthService(store, cfg.Admission.MaxLoginAttempts, logger),
	}
}
