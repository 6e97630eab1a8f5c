package domain

import "time"

// RatingCount is one bucket of a product's 1..5 rating distribution.
type RatingCount struct {
	Rating int   `json:"rating" bson:"rating"`
	Count  int64 `json:"count" bson:"count"`
}

type Product struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	Name               string        `json:"name" bson:"name"`
	Slug               string        `json:"slug" bson:"slug"`
	Category           string        `json:"category" bson:"category"`
	Images             []string      `json:"images" bson:"images"`
	Brand              string        `json:"brand" bson:"brand"`
	Description        string        `json:"description" bson:"description"`
	Price              float64       `json:"price" bson:"price"`
	ListPrice          float64       `json:"listPrice" bson:"list_price"`
	CountInStock       int           `json:"countInStock" bson:"count_in_stock"`
	Sizes              []string      `json:"sizes" bson:"sizes"`
	Colors             []string      `json:"colors" bson:"colors"`
	AvgRating          float64       `json:"avgRating" bson:"avg_rating"`
	NumReviews         int64         `json:"numReviews" bson:"num_reviews"`
	RatingDistribution []RatingCount `json:"ratingDistribution" bson:"rating_distribution"`
	IsPublished        bool          `json:"isPublished" bson:"is_published"`
	CreatedAt          time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" bson:"updated_at"`
}
