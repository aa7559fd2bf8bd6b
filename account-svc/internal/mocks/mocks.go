package mocks

import (
	"delish/account-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type AddressRepository struct {
	mock.Mock
}

func NewAddressRepository(t testingT) *AddressRepository {
	m := &AddressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AddressRepository) CreateAddress(addr *domain.Address) error {
	args := m.Called(addr)
	return args.Error(0)
}

func (m *AddressRepository) ListAddresses(userID int) ([]domain.Address, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *AddressRepository) GetAddress(id int) (*domain.Address, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *AddressRepository) UpdateAddress(addr *domain.Address) error {
	args := m.Called(addr)
	return args.Error(0)
}

func (m *AddressRepository) DeleteAddress(userID, id int) (int64, error) {
	args := m.Called(userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AddressRepository) SetDefaultAddress(userID, id int) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

type FavoriteRepository struct {
	mock.Mock
}

func NewFavoriteRepository(t testingT) *FavoriteRepository {
	m := &FavoriteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FavoriteRepository) RestaurantExists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepository) AddFavorite(fav *domain.Favorite) error {
	args := m.Called(fav)
	return args.Error(0)
}

func (m *FavoriteRepository) ListFavorites(userID int) ([]domain.Favorite, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *FavoriteRepository) RemoveFavorite(userID, restaurantID int) (int64, error) {
	args := m.Called(userID, restaurantID)
	return args.Get(0).(int64), args.Error(1)
}
