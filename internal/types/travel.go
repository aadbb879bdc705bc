package types

import "github.com/google/uuid"

const (
	CategoryAttraction = "attraction"
	CategoryHotel      = "hotel"
	CategoryRestaurant = "restaurant"
)

const (
	SourceTripadvisor = "tripadvisor"
	SourceWeb         = "web"
)

// AnonymousAuthor is used when a review carries no author.
const AnonymousAuthor = "Anonymous"

type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
	Author string  `json:"author"`
	Date   string  `json:"date"`
	Title  string  `json:"title,omitempty"`
	URL    string  `json:"url,omitempty"`
	Source string  `json:"source"`
}

// NearbyItem is a location near a coordinate pair. Distance is nil when the
// provider did not report a parseable value.
type NearbyItem struct {
	LocationID string   `json:"locationId"`
	Name       string   `json:"name"`
	Distance   *float64 `json:"distance"`
	Category   string   `json:"category"`
}

type Landmark struct {
	LocationID string   `json:"locationId"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Distance   *float64 `json:"distance"`
	Category   string   `json:"category"`
}

type Hotel struct {
	LocationID string   `json:"locationId"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Distance   *float64 `json:"distance"`
	Source     string   `json:"source"`
}

type Attribution struct {
	LogoURL string `json:"logoUrl"`
	Link    string `json:"link"`
}

// PlanRequest is the body of POST /api/plan.
type PlanRequest struct {
	StartLocation string     `json:"startLocation" validate:"required"`
	Destination   string     `json:"destination" validate:"required"`
	Days          int        `json:"days,omitempty" validate:"omitempty,min=1,max=30"`
	Budget        Budget     `json:"budget" validate:"required"`
	TravelWith    string     `json:"travelWith,omitempty"`
	Preference    string     `json:"preference,omitempty"`
	Interests     StringList `json:"interests,omitempty"`
}

// AggregatedPlanResponse is assembled per request and never cached whole.
type AggregatedPlanResponse struct {
	ID                uuid.UUID    `json:"id"`
	Plan              string       `json:"plan"`
	PhotoURLs         []string     `json:"photoUrls"`
	PlaceName         string       `json:"placeName"`
	Landmarks         []Landmark   `json:"landmarks"`
	Reviews           []Review     `json:"reviews"`
	NearbyAttractions []NearbyItem `json:"nearbyAttractions"`
	Attribution       Attribution  `json:"attribution"`
}

type HotelsResponse struct {
	Hotels []Hotel `json:"hotels"`
}

type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

type NearbyResponse struct {
	Attractions []NearbyItem `json:"attractions"`
}
