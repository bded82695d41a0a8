// File: internal/food/model.go
package food

import (
	"time"

	"foodshare_backend/internal/common"

	"github.com/google/uuid"
)

// ListingStatus is the lifecycle state of a food listing.
type ListingStatus string

const (
	// StatusAvailable means the listing can still be requested.
	StatusAvailable ListingStatus = "available"
	// StatusUnavailable means the listing has been claimed by a request.
	StatusUnavailable ListingStatus = "unavailable"
)

// FoodListing is a shared food item offered by a donor. The donor identity is
// denormalized onto the row so listings render without a join and survive
// later profile edits.
type FoodListing struct {
	common.BaseModel
	FoodName        string        `gorm:"type:varchar(255);not null;index" json:"foodName"`
	FoodImage       string        `gorm:"type:text" json:"foodImage"`
	FoodQuantity    int           `gorm:"not null" json:"foodQuantity"`
	PickupLocation  string        `gorm:"type:varchar(255);not null" json:"pickupLocation"`
	ExpiredDateTime time.Time     `gorm:"not null;index" json:"expiredDateTime"`
	AdditionalNotes string        `gorm:"type:text" json:"additionalNotes"`
	FoodStatus      ListingStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"foodStatus"`

	DonorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	DonorName  string    `gorm:"type:varchar(255);not null" json:"-"`
	DonorEmail string    `gorm:"type:varchar(255);not null;index" json:"-"`
	DonorImage string    `gorm:"type:text" json:"-"`
}

// TableName specifies the table name for the FoodListing model.
func (FoodListing) TableName() string {
	return "foods"
}

// IsAvailable reports whether the listing can still be requested.
func (f *FoodListing) IsAvailable() bool {
	return f.FoodStatus == StatusAvailable
}

// IsExpired reports whether the listing's pickup window has passed.
func (f *FoodListing) IsExpired(now time.Time) bool {
	return f.ExpiredDateTime.Before(now)
}

// --- DTOs ---

// DonatorInfo is the donor snapshot embedded in listing payloads.
type DonatorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// CreateFoodRequest is the payload for adding a new listing.
type CreateFoodRequest struct {
	FoodName        string    `json:"foodName" binding:"required,min=2,max=255"`
	FoodImage       string    `json:"foodImage" binding:"omitempty,url"`
	FoodQuantity    int       `json:"foodQuantity" binding:"required,gt=0"`
	PickupLocation  string    `json:"pickupLocation" binding:"required,min=2,max=255"`
	ExpiredDateTime time.Time `json:"expiredDateTime" binding:"required"`
	AdditionalNotes string    `json:"additionalNotes" binding:"omitempty,max=2000"`

	// Optional display snapshot. The donor's email and identity always come
	// from the session token, never from this payload.
	Donator *DonatorInfo `json:"donator" binding:"omitempty"`
}

// UpdateFoodRequest is the payload for editing a listing. All fields are
// optional; absent fields are left untouched.
type UpdateFoodRequest struct {
	FoodName        *string    `json:"foodName" binding:"omitempty,min=2,max=255"`
	FoodImage       *string    `json:"foodImage" binding:"omitempty,url"`
	FoodQuantity    *int       `json:"foodQuantity" binding:"omitempty,gt=0"`
	PickupLocation  *string    `json:"pickupLocation" binding:"omitempty,min=2,max=255"`
	ExpiredDateTime *time.Time `json:"expiredDateTime" binding:"omitempty"`
	AdditionalNotes *string    `json:"additionalNotes" binding:"omitempty,max=2000"`
}

// SearchQuery captures the list filters accepted by GET /available-foods.
type SearchQuery struct {
	Search string `form:"search"`
	Sort   string `form:"sort" binding:"omitempty,oneof=expiryDate -expiryDate"`
}

// FoodResponse is the wire shape of a listing.
type FoodResponse struct {
	ID              uuid.UUID     `json:"id"`
	FoodName        string        `json:"foodName"`
	FoodImage       string        `json:"foodImage,omitempty"`
	FoodQuantity    int           `json:"foodQuantity"`
	PickupLocation  string        `json:"pickupLocation"`
	ExpiredDateTime time.Time     `json:"expiredDateTime"`
	AdditionalNotes string        `json:"additionalNotes,omitempty"`
	FoodStatus      ListingStatus `json:"foodStatus"`
	Donator         DonatorInfo   `json:"donator"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ToResponse converts a listing row to its wire shape.
func ToResponse(f *FoodListing) FoodResponse {
	return FoodResponse{
		ID:              f.ID,
		FoodName:        f.FoodName,
		FoodImage:       f.FoodImage,
		FoodQuantity:    f.FoodQuantity,
		PickupLocation:  f.PickupLocation,
		ExpiredDateTime: f.ExpiredDateTime,
		AdditionalNotes: f.AdditionalNotes,
		FoodStatus:      f.FoodStatus,
		Donator: DonatorInfo{
			Name:  f.DonorName,
			Email: f.DonorEmail,
			Image: f.DonorImage,
		},
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ToResponseList converts a slice of listings to wire shapes.
func ToResponseList(foods []FoodListing) []FoodResponse {
	out := make([]FoodResponse, 0, len(foods))
	for i := range foods {
		out = append(out, ToResponse(&foods[i]))
	}
	return out
}
