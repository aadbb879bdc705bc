package tripadvisor

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// number decodes the provider's numeric fields, which arrive either as JSON
// numbers or as quoted strings.
type number struct {
	value float64
	valid bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = number{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = number{}
			return nil
		}
		*n = number{value: f, valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = number{value: f, valid: true}
	return nil
}

func (n number) ptr() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

type addressObj struct {
	AddressString string `json:"address_string"`
}

type locationItem struct {
	LocationID string     `json:"location_id"`
	Name       string     `json:"name"`
	Distance   number     `json:"distance"`
	Address    addressObj `json:"address_obj"`
}

type listResponse struct {
	Data []locationItem `json:"data"`
}

type detailsResponse struct {
	LocationID     string     `json:"location_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	WebURL         string     `json:"web_url"`
	Rating         number     `json:"rating"`
	NumReviews     number     `json:"num_reviews"`
	RatingImageURL string     `json:"rating_image_url"`
	Latitude       number     `json:"latitude"`
	Longitude      number     `json:"longitude"`
	Address        addressObj `json:"address_obj"`
}

type image struct {
	URL string `json:"url"`
}

type photosResponse struct {
	Data []struct {
		Images struct {
			Original *image `json:"original"`
			Large    *image `json:"large"`
			Medium   *image `json:"medium"`
		} `json:"images"`
	} `json:"data"`
}

type reviewsResponse struct {
	Data []struct {
		Text          string `json:"text"`
		Title         string `json:"title"`
		Rating        number `json:"rating"`
		PublishedDate string `json:"published_date"`
		URL           string `json:"url"`
		User          struct {
			Username string `json:"username"`
		} `json:"user"`
	} `json:"data"`
}
