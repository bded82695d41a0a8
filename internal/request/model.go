// File: internal/request/model.go
package request

import (
	"time"

	"foodshare_backend/internal/common"

	"github.com/google/uuid"
)

// StatusRequested is the initial state of every recorded request. The status
// column is an open string so later workflow states need no migration.
const StatusRequested = "requested"

// FoodRequest is an append-only ledger row recording that a user claimed a
// listing. Listing details are snapshotted at claim time so the row stays
// meaningful if the listing is later edited or deleted.
type FoodRequest struct {
	common.BaseModel
	FoodID          uuid.UUID `gorm:"type:uuid;not null;index" json:"foodId"`
	FoodName        string    `gorm:"type:varchar(255);not null" json:"foodName"`
	FoodImage       string    `gorm:"type:text" json:"foodImage"`
	PickupLocation  string    `gorm:"type:varchar(255);not null" json:"pickupLocation"`
	ExpiredDateTime time.Time `gorm:"not null" json:"expiredDateTime"`

	DonatorName  string `gorm:"type:varchar(255);not null" json:"donatorName"`
	DonatorEmail string `gorm:"type:varchar(255);not null" json:"donatorEmail"`

	RequesterID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	RequesterEmail string    `gorm:"type:varchar(255);not null;index" json:"requesterEmail"`

	RequestDate     time.Time `gorm:"not null" json:"requestDate"`
	AdditionalNotes string    `gorm:"type:text" json:"additionalNotes,omitempty"`
	Status          string    `gorm:"type:varchar(30);not null;default:'requested'" json:"status"`
}

// TableName specifies the table name for the FoodRequest model.
func (FoodRequest) TableName() string {
	return "food_requests"
}

// SubmitRequest is the payload for claiming a listing.
type SubmitRequest struct {
	FoodID          uuid.UUID `json:"foodId" binding:"required"`
	AdditionalNotes string    `json:"additionalNotes" binding:"omitempty,max=2000"`
}
