package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/SlavaShagalov/rental-booking/internal/auth/mocks"
	"github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/hasher"
)

type AuthSuite struct {
	suite.Suite
}

type fixture struct {
	uc     *usecase.UseCase
	repo   *mocks.MockRepository
	tokens *mocks.MockTokenManager
	hasher *hasher.BcryptHasher
}

func newFixture(t provider.T) fixture {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	tokens := mocks.NewMockTokenManager(ctrl)
	h := hasher.NewBcryptHasher(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		uc:     usecase.New(repo, tokens, h, logger),
		repo:   repo,
		tokens: tokens,
		hasher: h,
	}
}

func signUpParams() usecase.SignUpParams {
	return usecase.SignUpParams{
		Email:             " Anna@Example.com ",
		Password:          "password123",
		DateOfBirth:       time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
		LicenceSince:      time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		LicenceExpiryDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:           "1 Main St",
		City:              "Riga",
		Country:           "Latvia",
		Citizenship:       "Latvian",
		PhoneNumber:       "+37120000000",
	}
}

func (s *AuthSuite) TestSignUp(t provider.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(models.User{}, pkgErrors.ErrUserNotFound)
	f.repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params usecase.CreateParams) (models.User, models.Customer, error) {
			t.Assert().Equal("anna@example.com", params.Email)
			t.Assert().NoError(f.hasher.CompareHashAndPassword(ctx, params.HashedPassword, "password123"))
			return models.User{ID: 1, Email: params.Email}, models.Customer{ID: 2, UserID: 1}, nil
		})

	user, customer, err := f.uc.SignUp(context.Background(), signUpParams())
	t.Require().NoError(err)
	t.Assert().Equal(1, user.ID)
	t.Assert().Equal(1, customer.UserID)
}

func (s *AuthSuite) TestSignUpEmailTaken(t provider.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(models.User{ID: 1}, nil)

	_, _, err := f.uc.SignUp(context.Background(), signUpParams())
	t.Assert().ErrorIs(err, pkgErrors.ErrEmailTaken)
}

func (s *AuthSuite) TestSignUpLicenceDates(t provider.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, pkgErrors.ErrUserNotFound)

	params := signUpParams()
	params.LicenceExpiryDate = params.LicenceSince

	_, _, err := f.uc.SignUp(context.Background(), params)
	t.Assert().ErrorIs(err, pkgErrors.ErrInvalidLicenceDates)
}

func (s *AuthSuite) TestSignIn(t provider.T) {
	f := newFixture(t)
	hashed, err := f.hasher.GetHashedPassword(context.Background(), "password123")
	t.Require().NoError(err)
	user := models.User{ID: 3, Email: "anna@example.com", Password: hashed}

	t.WithNewStep("valid credentials", func(sCtx provider.StepCtx) {
		f.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(user, nil)
		f.tokens.EXPECT().Generate(user).Return(models.TokenResponse{AccessToken: "jwt"}, nil)

		token, err := f.uc.SignIn(context.Background(), usecase.SignInParams{Email: "ANNA@example.com", Password: "password123"})
		sCtx.Require().NoError(err)
		sCtx.Assert().Equal("jwt", token.AccessToken)
	})

	t.WithNewStep("wrong password", func(sCtx provider.StepCtx) {
		f.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(user, nil)

		_, err := f.uc.SignIn(context.Background(), usecase.SignInParams{Email: "anna@example.com", Password: "nope"})
		sCtx.Assert().ErrorIs(err, pkgErrors.ErrWrongLoginOrPassword)
	})

	t.WithNewStep("unknown email", func(sCtx provider.StepCtx) {
		f.repo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, pkgErrors.ErrUserNotFound)

		_, err := f.uc.SignIn(context.Background(), usecase.SignInParams{Email: "ghost@example.com", Password: "x"})
		sCtx.Assert().ErrorIs(err, pkgErrors.ErrWrongLoginOrPassword)
	})
}

func (s *AuthSuite) TestAuthenticate(t provider.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.WithNewStep("owner", func(sCtx provider.StepCtx) {
		f.tokens.EXPECT().Validate("owner").Return(1, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), 1).Return(models.User{ID: 1, IsOwner: true}, nil)

		principal, err := f.uc.Authenticate(ctx, "owner")
		sCtx.Require().NoError(err)
		sCtx.Assert().Equal(models.NewOwner(1), principal)
	})

	t.WithNewStep("customer", func(sCtx provider.StepCtx) {
		f.tokens.EXPECT().Validate("customer").Return(2, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), 2).Return(models.User{ID: 2}, nil)
		f.repo.EXPECT().GetCustomerByUserID(gomock.Any(), 2).Return(models.Customer{ID: 20, UserID: 2}, nil)

		principal, err := f.uc.Authenticate(ctx, "customer")
		sCtx.Require().NoError(err)
		sCtx.Assert().Equal(models.NewCustomer(2, 20), principal)
	})

	t.WithNewStep("user without profile", func(sCtx provider.StepCtx) {
		f.tokens.EXPECT().Validate("user").Return(3, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), 3).Return(models.User{ID: 3}, nil)
		f.repo.EXPECT().GetCustomerByUserID(gomock.Any(), 3).Return(models.Customer{}, pkgErrors.ErrCustomerNotFound)

		principal, err := f.uc.Authenticate(ctx, "user")
		sCtx.Require().NoError(err)
		sCtx.Assert().Equal(models.NewUser(3), principal)
	})

	t.WithNewStep("deleted user", func(sCtx provider.StepCtx) {
		f.tokens.EXPECT().Validate("deleted").Return(4, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), 4).Return(models.User{}, pkgErrors.ErrUserNotFound)

		_, err := f.uc.Authenticate(ctx, "deleted")
		sCtx.Assert().ErrorIs(err, pkgErrors.ErrInvalidToken)
	})

	t.WithNewStep("storage failure", func(sCtx provider.StepCtx) {
		dbErr := errors.New("timeout")
		f.tokens.EXPECT().Validate("slow").Return(5, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), 5).Return(models.User{}, dbErr)

		_, err := f.uc.Authenticate(ctx, "slow")
		sCtx.Assert().ErrorIs(err, dbErr)
	})
}

func (s *AuthSuite) TestMe(t provider.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByID(gomock.Any(), 1).Return(models.User{ID: 1, IsOwner: true}, nil)
	user, customer, err := f.uc.Me(context.Background(), models.NewOwner(1))
	t.Require().NoError(err)
	t.Assert().True(user.IsOwner)
	t.Assert().Nil(customer)

	f.repo.EXPECT().GetByID(gomock.Any(), 2).Return(models.User{ID: 2}, nil)
	f.repo.EXPECT().GetCustomerByUserID(gomock.Any(), 2).Return(models.Customer{ID: 20}, nil)
	_, customer, err = f.uc.Me(context.Background(), models.NewCustomer(2, 20))
	t.Require().NoError(err)
	t.Require().NotNil(customer)
	t.Assert().Equal(20, customer.ID)
}

func TestAuthSuite(t *testing.T) {
	suite.RunSuite(t, new(AuthSuite))
}
