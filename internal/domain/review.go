package domain

import "time"

// Review holds one buyer's review of a product. A buyer has at most one
// review per product; re-submitting replaces title/comment/rating.
type Review struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	UserID             string    `json:"user" bson:"user"`
	Product            string    `json:"product" bson:"product"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase" bson:"is_verified_purchase"`
	Title              string    `json:"title" bson:"title"`
	Comment            string    `json:"comment" bson:"comment"`
	Rating             int       `json:"rating" bson:"rating"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}
