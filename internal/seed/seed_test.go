package seed

import (
	"context"
	"testing"

	appModels "github.com/campusdesk/academics/internal/app/models"
	appRepos "github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryAdmins struct {
	appRepos.UserTxRepository
	users []appModels.User
}

func (m *memoryAdmins) GetUserByEmail(_ context.Context, email string) (*appModels.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memoryAdmins) WithTx(ctx context.Context, fn func(ctx context.Context, tx appRepos.UserTxRepository) error) error {
	return fn(ctx, m)
}

func (m *memoryAdmins) CreateUser(_ context.Context, user *appModels.User) error {
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func TestCreateDefaultAdmin(t *testing.T) {
	store := &memoryAdmins{}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, hasher, "admin@campus.edu", "admin-pass", zerolog.Nop()))
	require.NoError(t, CreateDefaultAdmin(context.Background(), store, hasher, "admin@campus.edu", "admin-pass", zerolog.Nop()))

	require.Len(t, store.users, 1)
	assert.Equal(t, appModels.RoleAdmin, store.users[0].Role)
	assert.True(t, hasher.Check(store.users[0].PasswordHash, "admin-pass"))
}

func TestCreateDefaultAdmin_SkipsWithoutPassword(t *testing.T) {
	store := &memoryAdmins{}

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, auth.NewPasswordHasher(bcrypt.MinCost), "admin@campus.edu", "", zerolog.Nop()))
	assert.Empty(t, store.users)
}
