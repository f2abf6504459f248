package entity

import "time"

const (
	SizeMicro  = "micro"
	SizeSmall  = "small"
	SizeMedium = "medium"
)

type BudgetRange struct {
	Min float64 `json:"min" firestore:"min"`
	Max float64 `json:"max" firestore:"max"`
}

// Mid returns the budget midpoint.
func (b BudgetRange) Mid() float64 {
	return (b.Min + b.Max) / 2
}

type ContactInfo struct {
	Email string `json:"email,omitempty" firestore:"email,omitempty"`
	Phone string `json:"phone,omitempty" firestore:"phone,omitempty"`
}

// RequesterProfile is the buyer side of the marketplace: a small business stating what it needs.
type RequesterProfile struct {
	ID           string      `json:"id" firestore:"id"`
	UserID       string      `json:"user_id" firestore:"userId"`
	BusinessName string      `json:"business_name" firestore:"businessName"`
	Industry     string      `json:"industry" firestore:"industry"`
	Size         string      `json:"size" firestore:"size"` // micro, small, medium
	Location     string      `json:"location" firestore:"location"`
	Needs        []string    `json:"needs" firestore:"needs"`
	ServiceTypes []string    `json:"service_types" firestore:"serviceTypes"`
	Budget       BudgetRange `json:"budget" firestore:"budget"`
	Contact      ContactInfo `json:"contact" firestore:"contact"`
	CreatedAt    time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time   `json:"updated_at" firestore:"updatedAt"`
}

type PriceRange struct {
	Service string  `json:"service" firestore:"service"`
	Min     float64 `json:"min" firestore:"min"`
	Max     float64 `json:"max" firestore:"max"`
}

// ProviderProfile is the vendor side. Services, Capabilities and Pricing are a denormalized,
// append-only summary of the offerings the provider has published.
type ProviderProfile struct {
	ID           string       `json:"id" firestore:"id"`
	UserID       string       `json:"user_id" firestore:"userId"`
	BusinessName string       `json:"business_name" firestore:"businessName"`
	Services     []string     `json:"services" firestore:"services"`
	Capabilities []string     `json:"capabilities" firestore:"capabilities"`
	Pricing      []PriceRange `json:"pricing" firestore:"pricing"`
	Location     string       `json:"location" firestore:"location"`
	Rating       float64      `json:"rating" firestore:"rating"`            // derived, 0-5
	ReviewCount  int          `json:"review_count" firestore:"reviewCount"` // derived
	ServiceIDs   []string     `json:"service_ids" firestore:"serviceIds"`
	ProductIDs   []string     `json:"product_ids" firestore:"productIds"`
	CreatedAt    time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updatedAt"`
}
