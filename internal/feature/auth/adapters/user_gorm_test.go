package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coffee_backend/internal/feature/auth/domain"
	"coffee_backend/internal/feature/auth/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&UserModel{}), "failed to migrate table")
	return db
}

func newUser(email string) *entity.User {
	return &entity.User{
		Name:         "Maria",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		AccountType:  entity.AccountProducer,
	}
}

func TestUserGorm_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := newUser("maria@fazenda.com.br")
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "maria@fazenda.com.br")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, entity.AccountProducer, byEmail.AccountType)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", byID.Name)
	assert.Equal(t, "$2a$10$hash", byID.PasswordHash)
}

func TestUserGorm_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@fazenda.com.br")))
	err := repo.Create(ctx, newUser("dup@fazenda.com.br"))
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUserGorm_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost@fazenda.com.br")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, 42, "x"), domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), domain.ErrUserNotFound)
}

func TestUserGorm_UpdatePasswordAndDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := newUser("maria@fazenda.com.br")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "$2a$10$other"))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$other", got.PasswordHash)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
