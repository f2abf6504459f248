package entity

import "time"

const (
	OfferingTypeService = "service"
	OfferingTypeProduct = "product"

	OfferingStatusActive   = "active"
	OfferingStatusInactive = "inactive"
)

// Offering is a Service or a Product published by exactly one provider.
// Products carry a single price, stored as MinPrice == MaxPrice.
type Offering struct {
	ID             string    `json:"id" firestore:"id"`
	ProviderID     string    `json:"provider_id" firestore:"providerId"`
	Type           string    `json:"type" firestore:"type"` // service, product
	Name           string    `json:"name" firestore:"name"`
	Description    string    `json:"description" firestore:"description"`
	Category       string    `json:"category" firestore:"category"`
	MinPrice       float64   `json:"min_price" firestore:"minPrice"`
	MaxPrice       float64   `json:"max_price" firestore:"maxPrice"`
	Currency       string    `json:"currency" firestore:"currency"`
	DeliveryTime   string    `json:"delivery_time,omitempty" firestore:"deliveryTime,omitempty"`
	Features       []string  `json:"features" firestore:"features"`
	Requirements   []string  `json:"requirements,omitempty" firestore:"requirements,omitempty"`
	Specifications []string  `json:"specifications,omitempty" firestore:"specifications,omitempty"`
	Tags           []string  `json:"tags" firestore:"tags"`
	Location       string    `json:"location" firestore:"location"`
	IsAvailable    bool      `json:"is_available" firestore:"isAvailable"`
	Status         string    `json:"status" firestore:"status"` // active, inactive
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// AveragePrice is the midpoint of the offering's price interval.
func (o *Offering) AveragePrice() float64 {
	return (o.MinPrice + o.MaxPrice) / 2
}

// Eligible reports whether the offering may appear in search results at all.
func (o *Offering) Eligible() bool {
	return o.Status == OfferingStatusActive && o.IsAvailable
}
