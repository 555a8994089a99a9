package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
)

// IStudentRepository defines the student persistence operations the
// workflow needs
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	// GetByIDForUpdate locks the student row for the rest of the
	// transaction so concurrent approvals of the same student serialize.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

// IGuardianRepository defines the guardian persistence operations
type IGuardianRepository interface {
	Create(ctx context.Context, guardian *models.Guardian) error
	Update(ctx context.Context, guardian *models.Guardian) error
}

// IPreinscriptionRepository defines the preinscription persistence operations
type IPreinscriptionRepository interface {
	Create(ctx context.Context, pre *models.Preinscription) error
	// GetByStudentID loads the preinscription owning a student, with its
	// guardian and full student set attached.
	GetByStudentID(ctx context.Context, studentID int64) (*models.Preinscription, error)
	GetByReference(ctx context.Context, reference string) (*models.Preinscription, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApprovalStatus) error
}

// IGroupRepository defines the group persistence operations
type IGroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	// ListByGradeLevel returns the grade level's groups in creation
	// order with member counts attached.
	ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]*models.Group, error)
	// ListByGradeLevelForUpdate additionally locks the group rows so two
	// placements cannot fill the same seat.
	ListByGradeLevelForUpdate(ctx context.Context, gradeLevelID int64) ([]*models.Group, error)
}

// IGradeLevelRepository defines the grade level persistence operations
type IGradeLevelRepository interface {
	Create(ctx context.Context, level *models.GradeLevel) error
	GetByID(ctx context.Context, id int64) (*models.GradeLevel, error)
	GetByName(ctx context.Context, name string) (*models.GradeLevel, error)
	GetAll(ctx context.Context) ([]*models.GradeLevel, error)
}

// ICredentialRepository defines the access credential persistence operations
type ICredentialRepository interface {
	Create(ctx context.Context, credential *models.AccessCredential) error
	GetByUsername(ctx context.Context, username string) (*models.AccessCredential, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Deactivate(ctx context.Context, id int64) error
}

// IStaffRepository defines the staff account persistence operations
type IStaffRepository interface {
	Create(ctx context.Context, staff *models.StaffAccount) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Repositories holds all the repository instances. The fields are
// interfaces so tests can substitute in-memory fakes.
type Repositories struct {
	Students        IStudentRepository
	Guardians       IGuardianRepository
	Preinscriptions IPreinscriptionRepository
	Groups          IGroupRepository
	GradeLevels     IGradeLevelRepository
	Credentials     ICredentialRepository
	Staff           IStaffRepository
}

// NewRepositories initializes all repositories over a querier, which is
// either the connection pool or an open transaction.
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		Students:        NewStudentRepository(q),
		Guardians:       NewGuardianRepository(q),
		Preinscriptions: NewPreinscriptionRepository(q),
		Groups:          NewGroupRepository(q),
		GradeLevels:     NewGradeLevelRepository(q),
		Credentials:     NewCredentialRepository(q),
		Staff:           NewStaffRepository(q),
	}
}

// IStore is the unit-of-work contract the services depend on: run a
// function against transaction-bound repositories, committing only when
// it returns nil.
type IStore interface {
	Repos() *Repositories
	InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error
}

// Store implements IStore over a PostgreSQL connection pool
type Store struct {
	db    *db.PostgresDB
	repos *Repositories
}

// NewStore creates a new Store
func NewStore(database *db.PostgresDB) *Store {
	return &Store{
		db:    database,
		repos: NewRepositories(database.Pool),
	}
}

// Repos returns pool-bound repositories for single-statement reads
func (s *Store) Repos() *Repositories {
	return s.repos
}

// InTx runs fn against repositories bound to one transaction. Every
// read and write inside fn shares that transaction; any error rolls the
// whole operation back.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}
