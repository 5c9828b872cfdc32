package usecase

import (
	"context"
	"net/http"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type UserUsecase struct {
	users     repo.UserRepository
	addresses repo.AddressRepository
	idGen     IDGenerator
	clock     Clock
}

func NewUserUsecase(users repo.UserRepository, addresses repo.AddressRepository, idGen IDGenerator, clock Clock) *UserUsecase {
	return &UserUsecase{users: users, addresses: addresses, idGen: idGen, clock: clock}
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	user.UpdatedAt = u.clock.Now()

	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

func (in AddressInput) validate() error {
	if in.Street == "" || in.City == "" || in.State == "" || in.ZipCode == "" || in.Country == "" {
		return NewHTTPError(http.StatusBadRequest, "all address fields are required")
	}
	return nil
}

func (u *UserUsecase) ListAddresses(ctx context.Context, userID string) ([]model.Address, error) {
	addresses, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return addresses, nil
}

func (u *UserUsecase) AddAddress(ctx context.Context, userID string, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	now := u.clock.Now()
	address := model.Address{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.addresses.Create(ctx, &address); err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return address, nil
}

func (u *UserUsecase) UpdateAddress(ctx context.Context, userID string, addressID string, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	//所有チェック込みの検索
	address, err := u.addresses.FindByUserAndID(ctx, userID, addressID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found or does not belong to user")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	address.Street = in.Street
	address.City = in.City
	address.State = in.State
	address.ZipCode = in.ZipCode
	address.Country = in.Country
	address.UpdatedAt = u.clock.Now()

	if err := u.addresses.Update(ctx, address); err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *address, nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]UserOutput, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for _, usr := range users {
		outs = append(outs, toUserOutput(usr))
	}
	return outs, nil
}

func (u *UserUsecase) UpdateUserStatus(ctx context.Context, userID string, isActive bool) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.IsActive = isActive
	user.UpdatedAt = u.clock.Now()
	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

func (u *UserUsecase) UpdateUserRole(ctx context.Context, userID string, role model.Role) (UserOutput, error) {
	if role != model.RoleCustomer && role != model.RoleAdmin {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Role = role
	user.UpdatedAt = u.clock.Now()
	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.users.Delete(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
