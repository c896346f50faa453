package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/service"
	"aansluitintake/mocks"
)

func TestUserService_Create_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "new@test.com",
		Password: "securepassword123",
		FullName: "New User",
		Role:     domain.RoleMember,
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@test.com", user.Email)
	assert.Equal(t, "New User", user.FullName)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "securepassword123", user.PasswordHash)
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "new@test.com",
		Password: "securepassword123",
		FullName: "New User",
		Role:     domain.UserRole("superuser"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "existing@test.com",
		Password: "password123",
		FullName: "Test User",
		Role:     domain.RoleMember,
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_GetByID_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	expected := &domain.User{ID: userID, Email: "user@test.com"}

	repo.On("GetByID", mock.Anything, userID).Return(expected, nil)

	user, err := svc.GetByID(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, expected, user)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()

	repo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	user, err := svc.GetByID(context.Background(), userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_List_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	expected := []domain.User{
		{ID: uuid.New(), Email: "a@test.com"},
		{ID: uuid.New(), Email: "b@test.com"},
	}

	repo.On("List", mock.Anything, 0, 20).Return(expected, 2, nil)

	users, total, err := svc.List(context.Background(), 0, 20)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, total)
}

func TestUserService_Update_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	existing := &domain.User{
		ID:       userID,
		Email:    "old@test.com",
		FullName: "Old Name",
		Role:     domain.RoleMember,
		IsActive: true,
	}
	newName := "New Name"
	newRole := domain.RoleAdmin

	repo.On("GetByID", mock.Anything, userID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{
		FullName: &newName,
		Role:     &newRole,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "old@test.com", user.Email)
	repo.AssertExpectations(t)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	existing := &domain.User{ID: userID, Email: "user@test.com", Role: domain.RoleMember}
	badRole := domain.UserRole("root")

	repo.On("GetByID", mock.Anything, userID).Return(existing, nil)

	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{Role: &badRole})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Delete_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()

	repo.On("Delete", mock.Anything, userID).Return(nil)

	err := svc.Delete(context.Background(), userID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
