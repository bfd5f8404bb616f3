package users_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestion-taller/taller-management/internal"
	userDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/user"
	"github.com/gestion-taller/taller-management/internal/users"
)

func TestUsersService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Users Service Suite")
}

// MockRepository implements users.RepositoryAPI for testing
type MockRepository struct {
	users  map[int64]*userDatamodel.User
	roles  map[int64]*userDatamodel.Role
	nextID int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:  make(map[int64]*userDatamodel.User),
		roles:  make(map[int64]*userDatamodel.Role),
		nextID: 1,
	}
}

func (m *MockRepository) GetAll(context.Context) ([]*userDatamodel.User, error) {
	var result []*userDatamodel.User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*userDatamodel.User, error) {
	return m.users[id], nil
}

func (m *MockRepository) GetByEmail(_ context.Context, email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetRole(_ context.Context, roleID int64) (*userDatamodel.Role, error) {
	return m.roles[roleID], nil
}

func (m *MockRepository) ListRoles(context.Context) ([]*userDatamodel.Role, error) {
	var result []*userDatamodel.Role
	for _, r := range m.roles {
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRepository) Create(_ context.Context, user *userDatamodel.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockRepository) Update(_ context.Context, user *userDatamodel.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockRepository) SetActive(_ context.Context, id int64, active bool) error {
	m.users[id].IsActive = active
	return nil
}

var _ = Describe("Users Service", func() {
	var (
		repo    *MockRepository
		service *users.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = users.NewService(repo, bcrypt.MinCost, logger)

		repo.roles[1] = &userDatamodel.Role{ID: 1, Name: "Administrador", Kind: "admin"}
		repo.roles[3] = &userDatamodel.Role{ID: 3, Name: "Operario", Kind: "operario"}
	})

	Describe("Create", func() {
		It("creates an active user with a hashed password", func() {
			created, err := service.Create(ctx, users.CreateUserDTO{
				Email:    "oscar@taller.test",
				Name:     "Oscar",
				Password: "super-secreto",
				RoleID:   3,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.IsActive).To(BeTrue())

			stored := repo.users[created.ID]
			Expect(stored.PasswordHash).NotTo(Equal("super-secreto"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secreto"))).To(Succeed())
		})

		It("rejects duplicate emails with a conflict", func() {
			_, err := service.Create(ctx, users.CreateUserDTO{
				Email: "oscar@taller.test", Name: "Oscar", Password: "super-secreto", RoleID: 3,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, users.CreateUserDTO{
				Email: "oscar@taller.test", Name: "Otro", Password: "super-secreto", RoleID: 3,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("rejects unknown roles", func() {
			_, err := service.Create(ctx, users.CreateUserDTO{
				Email: "x@taller.test", Name: "X", Password: "super-secreto", RoleID: 99,
			})
			Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())
		})

		It("rejects short passwords", func() {
			_, err := service.Create(ctx, users.CreateUserDTO{
				Email: "x@taller.test", Name: "X", Password: "corto", RoleID: 3,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		It("changes role after validating it exists", func() {
			created, err := service.Create(ctx, users.CreateUserDTO{
				Email: "oscar@taller.test", Name: "Oscar", Password: "super-secreto", RoleID: 3,
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, created.ID, users.UpdateUserDTO{Name: "Oscar", RoleID: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.RoleID).To(Equal(int64(1)))

			_, err = service.Update(ctx, created.ID, users.UpdateUserDTO{Name: "Oscar", RoleID: 99})
			Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())
		})
	})

	Describe("SetActive", func() {
		It("deactivates without deleting the row", func() {
			created, err := service.Create(ctx, users.CreateUserDTO{
				Email: "oscar@taller.test", Name: "Oscar", Password: "super-secreto", RoleID: 3,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.SetActive(ctx, created.ID, false)).To(Succeed())
			Expect(repo.users[created.ID]).NotTo(BeNil())
			Expect(repo.users[created.ID].IsActive).To(BeFalse())
		})

		It("is a no-op when the flag already matches", func() {
			created, err := service.Create(ctx, users.CreateUserDTO{
				Email: "oscar@taller.test", Name: "Oscar", Password: "super-secreto", RoleID: 3,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SetActive(ctx, created.ID, true)).To(Succeed())
		})
	})
})
