package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	pkgHasher "github.com/SlavaShagalov/rental-booking/internal/pkg/hasher"
)

type UseCase struct {
	repo   Repository
	tokens TokenManager
	hasher pkgHasher.Hasher
	logger *slog.Logger
}

func New(repo Repository, tokens TokenManager, hasher pkgHasher.Hasher, logger *slog.Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

func (u *UseCase) HealthCheck(ctx context.Context) error {
	return u.repo.HealthCheck(ctx)
}

// SignUp registers a user together with the customer profile that lets it book cars.
func (u *UseCase) SignUp(ctx context.Context, params SignUpParams) (models.User, models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	_, err := u.repo.GetByEmail(ctx, email)
	if !errors.Is(err, pkgErrors.ErrUserNotFound) {
		if err != nil {
			return models.User{}, models.Customer{}, err
		}
		return models.User{}, models.Customer{}, pkgErrors.ErrEmailTaken
	}

	if !params.LicenceExpiryDate.After(params.LicenceSince) {
		return models.User{}, models.Customer{}, pkgErrors.ErrInvalidLicenceDates
	}

	hashedPassword, err := u.hasher.GetHashedPassword(ctx, params.Password)
	if err != nil {
		return models.User{}, models.Customer{}, errors.Wrap(pkgErrors.ErrGetHashedPassword, err.Error())
	}

	user, customer, err := u.repo.CreateCustomer(ctx, CreateParams{
		Email:             email,
		HashedPassword:    hashedPassword,
		FirstName:         params.FirstName,
		LastName:          params.LastName,
		DateOfBirth:       params.DateOfBirth,
		LicenceSince:      params.LicenceSince,
		LicenceExpiryDate: params.LicenceExpiryDate,
		Address:           params.Address,
		City:              params.City,
		Country:           params.Country,
		Citizenship:       params.Citizenship,
		PhoneNumber:       params.PhoneNumber,
	})
	if err != nil {
		return models.User{}, models.Customer{}, err
	}

	u.logger.Debug("customer registered", slog.Int("user_id", user.ID), slog.Int("customer_id", customer.ID))

	return user, customer, nil
}

func (u *UseCase) SignIn(ctx context.Context, params SignInParams) (models.TokenResponse, error) {
	user, err := u.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(params.Email)))
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return models.TokenResponse{}, pkgErrors.ErrWrongLoginOrPassword
		}
		return models.TokenResponse{}, err
	}

	if err = u.hasher.CompareHashAndPassword(ctx, user.Password, params.Password); err != nil {
		return models.TokenResponse{}, errors.Wrap(pkgErrors.ErrWrongLoginOrPassword, err.Error())
	}

	return u.tokens.Generate(user)
}

// Me returns the caller's user record and, for customers, the profile.
func (u *UseCase) Me(ctx context.Context, principal models.Principal) (models.User, *models.Customer, error) {
	user, err := u.repo.GetByID(ctx, principal.UserID())
	if err != nil {
		return models.User{}, nil, err
	}

	if _, ok := principal.CustomerID(); !ok {
		return user, nil, nil
	}

	customer, err := u.repo.GetCustomerByUserID(ctx, user.ID)
	if err != nil {
		return models.User{}, nil, err
	}

	return user, &customer, nil
}

// Authenticate resolves a bearer token to a principal. The role is read from
// storage, not from the token, so a demoted owner loses access immediately.
func (u *UseCase) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	userID, err := u.tokens.Validate(token)
	if err != nil {
		return models.Principal{}, err
	}

	user, err := u.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return models.Principal{}, pkgErrors.ErrInvalidToken
		}
		return models.Principal{}, err
	}

	if user.IsOwner {
		return models.NewOwner(user.ID), nil
	}

	customer, err := u.repo.GetCustomerByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrCustomerNotFound) {
			return models.NewUser(user.ID), nil
		}
		return models.Principal{}, err
	}

	return models.NewCustomer(user.ID, customer.ID), nil
}
