package service

import (
	"errors"
	"sort"

	"delish/catalog-svc/internal/domain"
)

var ErrInvalidPayload = errors.New("invalid payload")

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) Create(actor domain.Actor, rest *domain.Restaurant) error {
	if !actor.Privileged() {
		return domain.ErrAccessDenied
	}
	if rest.Name == "" {
		return ErrInvalidPayload
	}
	if rest.OwnerID == 0 || actor.Role != domain.RoleAdmin {
		rest.OwnerID = actor.ID
	}
	rest.IsActive = true
	return s.repo.CreateRestaurant(rest)
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func (s *RestaurantService) List(filter domain.RestaurantFilter) ([]domain.Restaurant, domain.Pagination, error) {
	filter.Page, filter.Limit = clampPaging(filter.Page, filter.Limit)
	restaurants, total, err := s.repo.ListRestaurants(filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pages := (total + filter.Limit - 1) / filter.Limit
	return restaurants, domain.Pagination{Page: filter.Page, Limit: filter.Limit, Total: total, Pages: pages}, nil
}

func (s *RestaurantService) Get(id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(id)
}

// Update is restricted to the owning provider or an admin.
func (s *RestaurantService) Update(actor domain.Actor, rest *domain.Restaurant) error {
	existing, err := s.repo.GetRestaurant(rest.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	rest.OwnerID = existing.OwnerID
	return s.repo.UpdateRestaurant(rest)
}

func (s *RestaurantService) UpdateImage(actor domain.Actor, id int, imageURL string) error {
	existing, err := s.repo.GetRestaurant(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	return s.repo.UpdateRestaurantImage(id, imageURL)
}

// Menu returns the restaurant's available items grouped by category, with
// categories in alphabetical order.
func (s *RestaurantService) Menu(restaurantID int) ([]domain.MenuSection, error) {
	if _, err := s.repo.GetRestaurant(restaurantID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListMenu(restaurantID)
	if err != nil {
		return nil, err
	}

	byCategory := map[string][]domain.MenuItem{}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Other"
		}
		byCategory[category] = append(byCategory[category], item)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	sections := make([]domain.MenuSection, 0, len(categories))
	for _, category := range categories {
		sections = append(sections, domain.MenuSection{Category: category, Items: byCategory[category]})
	}
	return sections, nil
}

func (s *RestaurantService) AddMenuItem(actor domain.Actor, item *domain.MenuItem) error {
	existing, err := s.repo.GetRestaurant(item.RestaurantID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	if item.Name == "" || item.Price.IsNegative() {
		return ErrInvalidPayload
	}
	item.IsAvailable = true
	return s.repo.CreateMenuItem(item)
}

func (s *RestaurantService) UpdateMenuItem(actor domain.Actor, item *domain.MenuItem) error {
	existing, err := s.repo.GetRestaurant(item.RestaurantID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	return s.repo.UpdateMenuItem(item)
}

func (s *RestaurantService) RemoveMenuItem(actor domain.Actor, restaurantID, itemID int) error {
	existing, err := s.repo.GetRestaurant(restaurantID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	rows, err := s.repo.DeleteMenuItem(restaurantID, itemID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

type TiffinPlanService struct {
	repo TiffinPlanRepository
}

func NewTiffinPlanService(repo TiffinPlanRepository) *TiffinPlanService {
	return &TiffinPlanService{repo: repo}
}

func (s *TiffinPlanService) Create(actor domain.Actor, plan *domain.TiffinPlan) error {
	if !actor.Privileged() {
		return domain.ErrAccessDenied
	}
	if plan.Name == "" || plan.Price.IsNegative() || plan.DurationDays <= 0 {
		return ErrInvalidPayload
	}
	if plan.ProviderID == 0 || actor.Role != domain.RoleAdmin {
		plan.ProviderID = actor.ID
	}
	plan.IsActive = true
	return s.repo.CreateTiffinPlan(plan)
}

func (s *TiffinPlanService) List(filter domain.TiffinPlanFilter) ([]domain.TiffinPlan, domain.Pagination, error) {
	filter.Page, filter.Limit = clampPaging(filter.Page, filter.Limit)
	plans, total, err := s.repo.ListTiffinPlans(filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pages := (total + filter.Limit - 1) / filter.Limit
	return plans, domain.Pagination{Page: filter.Page, Limit: filter.Limit, Total: total, Pages: pages}, nil
}

func (s *TiffinPlanService) Get(id int) (*domain.TiffinPlan, error) {
	return s.repo.GetTiffinPlan(id)
}
