package types

// LatLng is a WGS84 coordinate pair as returned by the places provider.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the canonical place a free-text query resolved to.
type Place struct {
	PlaceID               string   `json:"placeId"`
	Name                  string   `json:"name"`
	Location              *LatLng  `json:"location,omitempty"`
	Types                 []string `json:"types"`
	TripadvisorLocationID string   `json:"tripadvisorLocationId,omitempty"`
}

// PlaceDetails merges the primary provider's details with the secondary
// provider's. PhotoURLs holds primary photos first.
type PlaceDetails struct {
	Name               string             `json:"name"`
	FormattedAddress   string             `json:"formattedAddress"`
	Types              []string           `json:"types"`
	Location           *LatLng            `json:"location,omitempty"`
	PhotoURLs          []string           `json:"photoUrls"`
	TripadvisorDetails TripadvisorDetails `json:"tripadvisorDetails"`
}

// TripadvisorDetails is the subset of the secondary provider's location
// details the client renders. It is empty when no secondary match exists.
type TripadvisorDetails struct {
	LocationID  string  `json:"locationId,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	WebURL      string  `json:"webUrl,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	NumReviews  int     `json:"numReviews,omitempty"`
	RatingImage string  `json:"ratingImageUrl,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Address     string  `json:"address,omitempty"`
}

// Location is a secondary provider search hit.
type Location struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
}

// PlaceResponse is the body of GET /api/places.
type PlaceResponse struct {
	Place
	FormattedAddress   string             `json:"formattedAddress,omitempty"`
	PhotoURLs          []string           `json:"photoUrls"`
	PhotoURL           string             `json:"photoUrl,omitempty"`
	TripadvisorDetails TripadvisorDetails `json:"tripadvisorDetails"`
}
