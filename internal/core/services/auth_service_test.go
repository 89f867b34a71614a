package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/core/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/platform/config"
	"github.com/SscSPs/car_market_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cfg          *config.Config
	service      portssvc.AuthSvc
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "car-market-test",
	}
	suite.service = services.NewAuthService(suite.cfg, suite.mockUserRepo)
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Phone: "+964 770 123 4567", Password: "secret1", FullName: "  علي حسن "}

	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Phone == "07701234567" &&
			u.LoginEmail == "07701234567@"+utils.LoginEmailDomain &&
			u.FullName == "علي حسن" &&
			u.Role == domain.RoleUser &&
			u.PasswordHash != "" && u.PasswordHash != "secret1"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.True(utils.CheckPasswordHash("secret1", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_InvalidPhone() {
	user, err := suite.service.Register(context.Background(), dto.RegisterRequest{Phone: "12345", Password: "secret1", FullName: "Ali"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicatePhone() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(&domain.User{UserID: "existing"}, nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{Phone: "07701234567", Password: "secret1", FullName: "Ali"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_LookupError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(nil, assert.AnError).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Phone: "07701234567", Password: "secret1", FullName: "Ali"})

	suite.ErrorIs(err, assert.AnError)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret1")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "user-1", Phone: "07701234567", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(stored, nil).Once()

	before := time.Now()
	token, expiresAt, user, err := suite.service.Login(ctx, dto.LoginRequest{Phone: "0770 123 4567", Password: "secret1"})

	suite.Require().NoError(err)
	suite.Equal(stored, user)
	suite.WithinDuration(before.Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("car-market-test", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret1")
	suite.Require().NoError(err)
	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(&domain.User{UserID: "user-1", PasswordHash: hash}, nil).Once()

	token, _, user, err := suite.service.Login(ctx, dto.LoginRequest{Phone: "07701234567", Password: "wrong"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Empty(token)
	suite.Nil(user)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownPhone() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByPhone", ctx, "07701234567").Return(nil, apperrors.ErrNotFound).Once()

	_, _, _, err := suite.service.Login(ctx, dto.LoginRequest{Phone: "07701234567", Password: "secret1"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_MalformedPhone() {
	_, _, _, err := suite.service.Login(context.Background(), dto.LoginRequest{Phone: "not-a-phone", Password: "secret1"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByPhone", mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
