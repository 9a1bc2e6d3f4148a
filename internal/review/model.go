package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uint       `json:"userId"`
	ProductID          uuid.UUID  `json:"productId"`
	OrderID            *uuid.UUID `json:"orderId,omitempty"`
	Rating             int        `json:"rating"`
	Title              string     `json:"title"`
	Comment            string     `json:"comment"`
	IsVerifiedPurchase bool       `json:"isVerifiedPurchase"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type CreateReviewInput struct {
	UserID    uint
	ProductID uuid.UUID
	Rating    int
	Title     string
	Comment   string
}

// Verification is the outcome of a purchase check.
type Verification struct {
	Eligible bool
	OrderID  *uuid.UUID
}

type Eligibility struct {
	CanReview bool       `json:"canReview"`
	Reason    string     `json:"reason,omitempty"`
	OrderID   *uuid.UUID `json:"orderId,omitempty"`
}

const (
	ReasonAlreadyReviewed = "already reviewed"
	ReasonNoPurchase      = "no delivered purchase"
)
