package model

import (
	"net/url"
	"strings"
)

const DefaultCountry = "United States"

type Location struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// Restaurant owns exactly one Location. ID 0 means not persisted, or not found.
type Restaurant struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	CuisineType string   `json:"cuisineType"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"phone"`
	Address     Location `json:"address"`
}

type SearchCriteria struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
}

func NewLocation() Location {
	return Location{Country: DefaultCountry}
}

func NewRestaurant() Restaurant {
	return Restaurant{Address: NewLocation()}
}

// Empty is the sentinel handed back when a lookup finds nothing.
func Empty() Restaurant {
	return NewRestaurant()
}

func (r Restaurant) Exists() bool {
	return r.ID != 0
}

// Normalize fills a missing country and puts the website into canonical form.
func (r *Restaurant) Normalize() {
	r.Website = NormalizeWebsite(r.Website)
	if strings.TrimSpace(r.Address.Country) == "" {
		r.Address.Country = DefaultCountry
	}
}

// NormalizeWebsite lowercases scheme and host and gives an empty path a
// trailing slash. Blank input stays blank; unparsable input is returned trimmed.
func NormalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// NaturalKeyEqual compares the business fields used to recognise a freshly
// inserted row: Name, CuisineType and Phone, ignoring case.
func NaturalKeyEqual(a, b Restaurant) bool {
	return strings.EqualFold(a.Name, b.Name) &&
		strings.EqualFold(a.CuisineType, b.CuisineType) &&
		strings.EqualFold(a.Phone, b.Phone)
}
