package tests

import (
	"testing"

	"delish/account-svc/internal/domain"
	"delish/account-svc/internal/mocks"
	"delish/account-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var customer = domain.Actor{ID: 42, Role: domain.RoleCustomer}

func TestCreateAddress(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	repo.On("CreateAddress", mock.MatchedBy(func(addr *domain.Address) bool {
		return addr.UserID == customer.ID && addr.Label == "home"
	})).Return(nil)

	err := svc.Create(customer, &domain.Address{Line1: "12 MG Road", City: "Pune", Pincode: "411001"})
	assert.NoError(t, err)
}

func TestCreateAddress_Invalid(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	err := svc.Create(customer, &domain.Address{City: "Pune"})
	assert.ErrorIs(t, err, service.ErrInvalidPayload)
	repo.AssertNotCalled(t, "CreateAddress", mock.Anything)
}

func TestUpdateAddress_NotOwner(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	repo.On("GetAddress", 5).Return(&domain.Address{ID: 5, UserID: 999}, nil)

	err := svc.Update(customer, &domain.Address{ID: 5, Line1: "New", City: "Pune", Pincode: "411001"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDeleteAddress_NotFound(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	repo.On("DeleteAddress", customer.ID, 5).Return(int64(0), nil)

	err := svc.Delete(customer, 5)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestSetDefaultAddress(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	repo.On("GetAddress", 5).Return(&domain.Address{ID: 5, UserID: customer.ID}, nil)
	repo.On("SetDefaultAddress", customer.ID, 5).Return(nil)

	assert.NoError(t, svc.SetDefault(customer, 5))
}

func TestSetDefaultAddress_NotOwner(t *testing.T) {
	repo := mocks.NewAddressRepository(t)
	svc := service.NewAddressService(repo)

	repo.On("GetAddress", 5).Return(&domain.Address{ID: 5, UserID: 999}, nil)

	err := svc.SetDefault(customer, 5)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	repo.AssertNotCalled(t, "SetDefaultAddress", mock.Anything, mock.Anything)
}

func TestAddFavorite(t *testing.T) {
	repo := mocks.NewFavoriteRepository(t)
	svc := service.NewFavoriteService(repo)

	repo.On("RestaurantExists", 7).Return(true, nil)
	repo.On("AddFavorite", mock.MatchedBy(func(fav *domain.Favorite) bool {
		return fav.UserID == customer.ID && fav.RestaurantID == 7
	})).Return(nil)

	fav, err := svc.Add(customer, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, fav.RestaurantID)
}

func TestAddFavorite_InvalidRestaurant(t *testing.T) {
	repo := mocks.NewFavoriteRepository(t)
	svc := service.NewFavoriteService(repo)

	_, err := svc.Add(customer, 0)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)
}

func TestAddFavorite_UnknownRestaurant(t *testing.T) {
	repo := mocks.NewFavoriteRepository(t)
	svc := service.NewFavoriteService(repo)

	repo.On("RestaurantExists", 99).Return(false, nil)

	_, err := svc.Add(customer, 99)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	repo.AssertNotCalled(t, "AddFavorite", mock.Anything)
}

func TestAddFavorite_Duplicate(t *testing.T) {
	repo := mocks.NewFavoriteRepository(t)
	svc := service.NewFavoriteService(repo)

	repo.On("RestaurantExists", 7).Return(true, nil)
	repo.On("AddFavorite", mock.Anything).Return(domain.ErrDuplicateFavorite)

	_, err := svc.Add(customer, 7)
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	repo := mocks.NewFavoriteRepository(t)
	svc := service.NewFavoriteService(repo)

	repo.On("RemoveFavorite", customer.ID, 7).Return(int64(0), nil)

	err := svc.Remove(customer, 7)
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}
