package auth

import (
	"context"
	"testing"

	"equiprent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 5
	}
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	service := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "rita@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("GenerateToken", int64(5), "user").Return("signed.jwt", nil)

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "rita@example.com",
		Password: "correct-horse",
		Name:     "Rita",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed.jwt", result.Token)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.NotEqual(t, "correct-horse", result.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("correct-horse")))
}

func TestRegister_OperatorRoleHonored(t *testing.T) {
	users := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	service := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "op@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("GenerateToken", int64(5), "operator").Return("signed.jwt", nil)

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "op@example.com",
		Password: "correct-horse",
		Name:     "Op",
		Role:     "operator",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleOperator, result.User.Role)
}

func TestRegister_AdminRoleDemotedToUser(t *testing.T) {
	users := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	service := NewService(users, tokens)

	users.On("GetByEmail", mock.Anything, "sneaky@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("GenerateToken", int64(5), "user").Return("signed.jwt", nil)

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "correct-horse",
		Name:     "Sneaky",
		Role:     "admin",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, result.User.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(MockUserRepo)
	service := NewService(users, new(MockTokenIssuer))

	users.On("GetByEmail", mock.Anything, "rita@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "rita@example.com",
		Password: "correct-horse",
		Name:     "Rita",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	service := NewService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "rita@example.com").Return(&domain.User{
		ID: 5, Email: "rita@example.com", PasswordHash: string(hash), Role: domain.RoleUser,
	}, nil)
	tokens.On("GenerateToken", int64(5), "user").Return("signed.jwt", nil)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "rita@example.com",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed.jwt", result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepo)
	service := NewService(users, new(MockTokenIssuer))

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "rita@example.com").Return(&domain.User{
		ID: 5, PasswordHash: string(hash),
	}, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "rita@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepo)
	service := NewService(users, new(MockTokenIssuer))

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "anything",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
