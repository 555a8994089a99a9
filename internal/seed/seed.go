package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/app/services"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// defaultGradeLevels are the academic tiers a preinscription may aspire
// to. They are created once; names are unique and immutable afterwards.
var defaultGradeLevels = []string{
	"Pre-Jardín",
	"Jardín",
	"Transición",
	"Primero",
	"Segundo",
	"Tercero",
	"Cuarto",
	"Quinto",
}

// CreateDefaultData creates the grade levels and the default director
// account if they don't exist. Seeding is idempotent; duplicates are
// skipped, other errors are collected and reported without stopping the
// startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data (grade levels, director account)...")
	var finalErr error

	for _, name := range defaultGradeLevels {
		level := &models.GradeLevel{Name: name}
		if err := repos.GradeLevels.Create(ctx, level); err != nil {
			if dberrors.IsUniqueViolation(err) {
				continue
			}
			lgr.Error().Err(err).Str("gradeLevel", name).Msg("Error creating grade level")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createDefaultDirector(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// createDefaultDirector creates the director staff account with an
// issued credential so the admission workflow can be operated on a
// fresh database.
func createDefaultDirector(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	const directorEmail = "director@school.edu.co"

	exists, err := repos.Staff.EmailExists(ctx, directorEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if director account exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating default director account...")

	director := &models.StaffAccount{
		Person: models.Person{
			FirstName:  "Amanda",
			LastName:   "Rodríguez",
			Age:        45,
			NationalID: "1000000001",
		},
		Role:  models.RoleDirector,
		Email: directorEmail,
	}

	credentialSvc := services.NewCredentialService(lgr)
	credential, password, err := credentialSvc.Issue(ctx, repos.Credentials, director.Person, models.RoleDirector)
	if err != nil {
		lgr.Error().Err(err).Msg("Error issuing director credential")
		return err
	}

	director.CredentialID = &credential.ID
	if err := repos.Staff.Create(ctx, director); err != nil {
		lgr.Error().Err(err).Msg("Error creating director account")
		return err
	}

	// The generated password is only printed once, at first seed.
	lgr.Info().
		Str("username", credential.Username).
		Str("password", password).
		Msg("Director account created; store these credentials")
	return nil
}
