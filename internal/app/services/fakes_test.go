package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// memData is the shared in-memory state behind the fake repositories.
// IDs are assigned sequentially per entity on Create.
type memData struct {
	students    []*models.Student
	guardians   []*models.Guardian
	pres        []*models.Preinscription
	groups      []*models.Group
	levels      []*models.GradeLevel
	credentials []*models.AccessCredential
	staff       []*models.StaffAccount
}

// newFakeStore builds an IStore whose repositories all operate on the
// same memData. InTx runs the callback directly; transactionality is
// the pgx store's concern, not the orchestration logic under test.
func newFakeStore(data *memData) *fakeStore {
	repos := &repositories.Repositories{
		Students:        &fakeStudents{data: data},
		Guardians:       &fakeGuardians{data: data},
		Preinscriptions: &fakePreinscriptions{data: data},
		Groups:          &fakeGroups{data: data},
		GradeLevels:     &fakeGradeLevels{data: data},
		Credentials:     &fakeCredentials{data: data},
		Staff:           &fakeStaff{data: data},
	}
	return &fakeStore{repos: repos}
}

type fakeStore struct {
	repos *repositories.Repositories
}

func (s *fakeStore) Repos() *repositories.Repositories { return s.repos }

func (s *fakeStore) InTx(ctx context.Context, fn func(ctx context.Context, r *repositories.Repositories) error) error {
	return fn(ctx, s.repos)
}

type fakeStudents struct {
	data    *memData
	updated []int64
}

func (f *fakeStudents) Create(ctx context.Context, student *models.Student) error {
	student.ID = int64(len(f.data.students) + 1)
	f.data.students = append(f.data.students, student)
	return nil
}

func (f *fakeStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	for _, s := range f.data.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Student", id)
}

func (f *fakeStudents) GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeStudents) Update(ctx context.Context, student *models.Student) error {
	f.updated = append(f.updated, student.ID)
	return nil
}

type fakeGuardians struct {
	data    *memData
	updated []int64
}

func (f *fakeGuardians) Create(ctx context.Context, guardian *models.Guardian) error {
	guardian.ID = int64(len(f.data.guardians) + 1)
	f.data.guardians = append(f.data.guardians, guardian)
	return nil
}

func (f *fakeGuardians) Update(ctx context.Context, guardian *models.Guardian) error {
	f.updated = append(f.updated, guardian.ID)
	return nil
}

type fakePreinscriptions struct {
	data *memData
}

func (f *fakePreinscriptions) Create(ctx context.Context, pre *models.Preinscription) error {
	pre.ID = int64(len(f.data.pres) + 1)
	f.data.pres = append(f.data.pres, pre)
	return nil
}

func (f *fakePreinscriptions) GetByStudentID(ctx context.Context, studentID int64) (*models.Preinscription, error) {
	for _, pre := range f.data.pres {
		for _, s := range pre.Students {
			if s.ID == studentID {
				return pre, nil
			}
		}
	}
	return nil, apperrors.NewMissingRelationError("Student", "preinscription")
}

func (f *fakePreinscriptions) GetByReference(ctx context.Context, reference string) (*models.Preinscription, error) {
	for _, pre := range f.data.pres {
		if pre.Reference == reference {
			return pre, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Preinscription", 0)
}

func (f *fakePreinscriptions) UpdateStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	for _, pre := range f.data.pres {
		if pre.ID == id {
			pre.Status = status
			return nil
		}
	}
	return apperrors.NewNotFoundError("Preinscription", id)
}

type fakeGroups struct {
	data *memData
}

func (f *fakeGroups) Create(ctx context.Context, group *models.Group) error {
	group.ID = int64(len(f.data.groups) + 1)
	f.data.groups = append(f.data.groups, group)
	return nil
}

func (f *fakeGroups) Update(ctx context.Context, group *models.Group) error {
	return nil
}

func (f *fakeGroups) ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]*models.Group, error) {
	var groups []*models.Group
	for _, g := range f.data.groups {
		if g.GradeLevelID == gradeLevelID {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

func (f *fakeGroups) ListByGradeLevelForUpdate(ctx context.Context, gradeLevelID int64) ([]*models.Group, error) {
	return f.ListByGradeLevel(ctx, gradeLevelID)
}

type fakeGradeLevels struct {
	data *memData
}

func (f *fakeGradeLevels) Create(ctx context.Context, level *models.GradeLevel) error {
	level.ID = int64(len(f.data.levels) + 1)
	f.data.levels = append(f.data.levels, level)
	return nil
}

func (f *fakeGradeLevels) GetByID(ctx context.Context, id int64) (*models.GradeLevel, error) {
	for _, level := range f.data.levels {
		if level.ID == id {
			return level, nil
		}
	}
	return nil, apperrors.NewNotFoundError("GradeLevel", id)
}

func (f *fakeGradeLevels) GetByName(ctx context.Context, name string) (*models.GradeLevel, error) {
	for _, level := range f.data.levels {
		if level.Name == name {
			return level, nil
		}
	}
	return nil, apperrors.NewNotFoundError("GradeLevel", 0)
}

func (f *fakeGradeLevels) GetAll(ctx context.Context) ([]*models.GradeLevel, error) {
	return f.data.levels, nil
}

type fakeCredentials struct {
	data *memData
}

func (f *fakeCredentials) Create(ctx context.Context, credential *models.AccessCredential) error {
	credential.ID = int64(len(f.data.credentials) + 1)
	f.data.credentials = append(f.data.credentials, credential)
	return nil
}

func (f *fakeCredentials) GetByUsername(ctx context.Context, username string) (*models.AccessCredential, error) {
	for _, c := range f.data.credentials {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("AccessCredential", 0)
}

func (f *fakeCredentials) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeCredentials) Deactivate(ctx context.Context, id int64) error {
	for _, c := range f.data.credentials {
		if c.ID == id {
			c.Active = false
			return nil
		}
	}
	return apperrors.NewNotFoundError("AccessCredential", id)
}

type fakeStaff struct {
	data *memData
}

func (f *fakeStaff) Create(ctx context.Context, staff *models.StaffAccount) error {
	staff.ID = int64(len(f.data.staff) + 1)
	f.data.staff = append(f.data.staff, staff)
	return nil
}

func (f *fakeStaff) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, s := range f.data.staff {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeNotifier records credential notifications instead of sending them.
type fakeNotifier struct {
	sent []credentialNotice
	fail bool
}

func (f *fakeNotifier) SendCredentials(toEmail, fullName, username, password, roleName string) bool {
	f.sent = append(f.sent, credentialNotice{
		Email:    toEmail,
		FullName: fullName,
		Username: username,
		Password: password,
		RoleName: roleName,
	})
	return !f.fail
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
