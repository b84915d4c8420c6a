package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// fakeUserRepo repositorio en memoria; getByUsernameErr permite simular una
// caída de la base de datos en la verificación de duplicados.
type fakeUserRepo struct {
	users            map[string]*entity.User // por username
	getByUsernameErr error
	created          []*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.Username] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	if r.getByUsernameErr != nil {
		return nil, r.getByUsernameErr
	}
	return r.users[username], nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	list := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

func (r *fakeUserRepo) Delete(id string) error { return nil }

func TestCreateUser_HasheaPasswordYRolePorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito se asigna user")
	assert.Equal(t, "ana", out.Name, "sin nombre visible se usa el username")

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestCreateUser_UsernameDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(dto.CreateUserRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUserRequest{Username: "ana", Password: "otra456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Una caída de la base de datos al verificar duplicados debe propagarse, no
// confundirse con "no hay duplicado".
func TestCreateUser_ErrorDeRepoSePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getByUsernameErr = errors.New("connection refused")
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{Username: "ana", Password: "secreto123"})
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, repo.created, "con la verificación caída no se crea nada")
}

func TestCreateUser_ValidaEntrada(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	cases := []struct {
		name string
		in   dto.CreateUserRequest
	}{
		{"sin username", dto.CreateUserRequest{Password: "secreto123"}},
		{"sin password", dto.CreateUserRequest{Username: "ana"}},
		{"rol desconocido", dto.CreateUserRequest{Username: "ana", Password: "secreto123", Role: "bodeguero"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
