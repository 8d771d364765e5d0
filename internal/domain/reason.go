package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ReasonType string

const (
	ReasonTypeWaiting  ReasonType = "waiting"
	ReasonTypeRejected ReasonType = "rejected"
)

func (t ReasonType) Valid() bool {
	return t == ReasonTypeWaiting || t == ReasonTypeRejected
}

// Actor identifies who performed an operation.
type Actor string

const (
	ActorRestaurant Actor = "restaurant"
	ActorAdmin      Actor = "admin"
	ActorSystem     Actor = "system"
)

func (a Actor) Valid() bool {
	return a == ActorRestaurant || a == ActorAdmin || a == ActorSystem
}

const MaxReasonTextLen = 200

// Reason is a restaurant-authored justification template for rejecting or
// delaying an order request. Reasons are never hard-deleted: IsActive=false
// removes them from selection lists while past transitions keep referencing
// them for display.
type Reason struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Type         ReasonType
	Text         string
	IsActive     bool
	CreatedBy    Actor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReason creates an active reason with business validation applied.
func NewReason(restaurantID uuid.UUID, reasonType ReasonType, text string, createdBy Actor) (*Reason, error) {
	text = strings.TrimSpace(text)

	if !reasonType.Valid() {
		return nil, NewValidationError("reasonType", "reason type must be one of: waiting, rejected")
	}
	if err := ValidateReasonText(text); err != nil {
		return nil, err
	}
	if createdBy != ActorRestaurant && createdBy != ActorAdmin {
		return nil, NewValidationError("createdBy", "reasons are created by restaurant or admin")
	}

	now := time.Now()
	return &Reason{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Type:         reasonType,
		Text:         text,
		IsActive:     true,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func ValidateReasonText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("reasonText", "reason text is required")
	}
	// Bound is in characters, not bytes.
	if utf8.RuneCountInString(text) > MaxReasonTextLen {
		return NewValidationError("reasonText", "reason text must not exceed 200 characters")
	}
	return nil
}
