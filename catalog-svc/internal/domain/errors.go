package domain

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrPlanNotFound       = errors.New("tiffin plan not found")
	ErrAccessDenied       = errors.New("you do not have permission to perform this action")
	ErrNoDeliveredOrder   = errors.New("you can only review restaurants you have ordered from")
	ErrDuplicateReview    = errors.New("you have already reviewed this order")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)
