package listing

import "time"

// Listing is a published property advert. Optional attributes are pointers
// so the presentation layer can omit them instead of showing zeros.
type Listing struct {
	ID           string
	Title        string
	Price        int64
	LocationText string
	Typology     string
	Rooms        *int
	Bathrooms    *int
	Area         *int
	Images       []string
	Status       string
	Owner        *Owner
	CreatedAt    time.Time
}

// Owner is the public subset of the advertiser's profile shown on a card.
type Owner struct {
	Name string
	Role string
}

// Stats are the site-wide counters shown on the landing page.
type Stats struct {
	Listings     int
	Users        int
	Satisfaction int
}
