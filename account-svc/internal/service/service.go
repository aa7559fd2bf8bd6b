package service

import (
	"errors"

	"delish/account-svc/internal/domain"
)

var ErrInvalidPayload = errors.New("invalid payload")

type AddressRepository interface {
	CreateAddress(addr *domain.Address) error
	ListAddresses(userID int) ([]domain.Address, error)
	GetAddress(id int) (*domain.Address, error)
	UpdateAddress(addr *domain.Address) error
	DeleteAddress(userID, id int) (int64, error)
	// SetDefaultAddress marks one address as default and clears the flag on
	// the user's others in the same transaction.
	SetDefaultAddress(userID, id int) error
}

type FavoriteRepository interface {
	RestaurantExists(id int) (bool, error)
	AddFavorite(fav *domain.Favorite) error
	ListFavorites(userID int) ([]domain.Favorite, error)
	RemoveFavorite(userID, restaurantID int) (int64, error)
}

type AddressServiceInterface interface {
	Create(actor domain.Actor, addr *domain.Address) error
	List(actor domain.Actor) ([]domain.Address, error)
	Update(actor domain.Actor, addr *domain.Address) error
	Delete(actor domain.Actor, id int) error
	SetDefault(actor domain.Actor, id int) error
}

type FavoriteServiceInterface interface {
	Add(actor domain.Actor, restaurantID int) (*domain.Favorite, error)
	List(actor domain.Actor) ([]domain.Favorite, error)
	Remove(actor domain.Actor, restaurantID int) error
}

type AddressService struct {
	repo AddressRepository
}

func NewAddressService(repo AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func (s *AddressService) Create(actor domain.Actor, addr *domain.Address) error {
	if addr.Line1 == "" || addr.City == "" || addr.Pincode == "" {
		return ErrInvalidPayload
	}
	addr.UserID = actor.ID
	if addr.Label == "" {
		addr.Label = "home"
	}
	return s.repo.CreateAddress(addr)
}

func (s *AddressService) List(actor domain.Actor) ([]domain.Address, error) {
	return s.repo.ListAddresses(actor.ID)
}

func (s *AddressService) Update(actor domain.Actor, addr *domain.Address) error {
	existing, err := s.repo.GetAddress(addr.ID)
	if err != nil {
		return err
	}
	if existing.UserID != actor.ID {
		return domain.ErrAccessDenied
	}
	addr.UserID = actor.ID
	return s.repo.UpdateAddress(addr)
}

func (s *AddressService) Delete(actor domain.Actor, id int) error {
	rows, err := s.repo.DeleteAddress(actor.ID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (s *AddressService) SetDefault(actor domain.Actor, id int) error {
	existing, err := s.repo.GetAddress(id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.ID {
		return domain.ErrAccessDenied
	}
	return s.repo.SetDefaultAddress(actor.ID, id)
}

var _ AddressServiceInterface = (*AddressService)(nil)

type FavoriteService struct {
	repo FavoriteRepository
}

func NewFavoriteService(repo FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

func (s *FavoriteService) Add(actor domain.Actor, restaurantID int) (*domain.Favorite, error) {
	if restaurantID <= 0 {
		return nil, ErrInvalidPayload
	}
	exists, err := s.repo.RestaurantExists(restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrRestaurantNotFound
	}
	fav := &domain.Favorite{UserID: actor.ID, RestaurantID: restaurantID}
	if err := s.repo.AddFavorite(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) List(actor domain.Actor) ([]domain.Favorite, error) {
	return s.repo.ListFavorites(actor.ID)
}

func (s *FavoriteService) Remove(actor domain.Actor, restaurantID int) error {
	rows, err := s.repo.RemoveFavorite(actor.ID, restaurantID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

var _ FavoriteServiceInterface = (*FavoriteService)(nil)
