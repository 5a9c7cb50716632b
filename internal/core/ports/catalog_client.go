package ports

import "context"

// GigRequirement is one entry of a gig's requirement template.
type GigRequirement struct {
	Question string
	Required bool
	WithFile bool
}

// Gig is the catalog's view of a purchasable service, read during order
// creation and snapshotted onto the order.
type Gig struct {
	ID                   string
	SellerID             string
	Title                string
	Description          string
	CoverImage           string
	UnitPrice            int64
	Currency             string
	ExpectedDeliveryDays int
	MaxRevision          *int
	Requirements         []GigRequirement
}

// Profile is the profile service's view of a marketplace account.
type Profile struct {
	ID       string
	Username string
	Email    string
	Picture  string
	Country  string
}

// CatalogClient provides read-only lookups against the catalog and profile
// services, consumed during order creation and cost calculation only.
type CatalogClient interface {
	GetGig(ctx context.Context, gigID string) (Gig, error)
	GetProfile(ctx context.Context, accountID string) (Profile, error)
}
