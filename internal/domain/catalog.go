package domain

// ProductKind distinguishes regular products from legacy service-typed products
type ProductKind string

const (
	ProductKindProduct ProductKind = "product"
	ProductKindService ProductKind = "service"
)

// Product belongs to exactly one business
type Product struct {
	ID         int64
	BusinessID int64
	Name       string
	Price      *float64
	Kind       ProductKind
}

// Service belongs to exactly one business
type Service struct {
	ID         int64
	BusinessID int64
	Name       string
	Price      *float64
	Duration   string // display only, not used for scheduling
}

// ItemSource tells where a bookable item was resolved from
type ItemSource string

const (
	ItemSourceService       ItemSource = "service"
	ItemSourceLegacyProduct ItemSource = "legacy_product"
)

// BookableItem is a service that can be booked as an appointment,
// regardless of whether it is stored as a Service or as a service-kind Product
type BookableItem struct {
	ID         int64
	BusinessID int64
	Name       string
	Price      *float64
	Duration   string
	Source     ItemSource
}

// BookableFromService wraps a Service
func BookableFromService(s *Service) *BookableItem {
	return &BookableItem{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		Price:      s.Price,
		Duration:   s.Duration,
		Source:     ItemSourceService,
	}
}

// BookableFromProduct wraps a service-kind Product
func BookableFromProduct(p *Product) *BookableItem {
	return &BookableItem{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		Name:       p.Name,
		Price:      p.Price,
		Source:     ItemSourceLegacyProduct,
	}
}
