// Package domain contains the core data types and pure business rules for the
// eco-tourism booking core. It has no dependencies on storage or transport
// and is imported by every other internal package (catalog, repo, service,
// handler).
package domain

import "math"

// Destination is a bookable eco-lodge loaded from the catalog file.
// Field names follow the catalog JSON so records decode without mapping.
// Struct tags are enforced by the catalog at load time.
type Destination struct {
	ID                      int64    `json:"id" validate:"gt=0"`
	Name                    string   `json:"name" validate:"required"`
	Location                string   `json:"location" validate:"required"`
	Country                 string   `json:"country" validate:"required"`
	Region                  string   `json:"region,omitempty"`
	SustainabilityRating    int      `json:"sustainabilityRating" validate:"gte=0,lte=5"`
	Certifications          []string `json:"certifications"`
	ActivityTypes           []string `json:"activityTypes"`
	PricePerNight           float64  `json:"pricePerNight" validate:"gte=0"`
	HeroImage               string   `json:"heroImage,omitempty"`
	Images                  []string `json:"images,omitempty"`
	Description             string   `json:"description,omitempty"`
	SustainabilityPractices []string `json:"sustainabilityPractices,omitempty"`
	CarbonFootprint         float64  `json:"carbonFootprint" validate:"gte=0"`
	RenewableEnergy         int      `json:"renewableEnergy,omitempty" validate:"gte=0,lte=100"`
	WaterConservation       string   `json:"waterConservation,omitempty"`
	CommunityImpact         string   `json:"communityImpact,omitempty"`
	WildlifeProtection      string   `json:"wildlifeProtection,omitempty"`
	Amenities               []string `json:"amenities,omitempty"`
	Reviews                 []Review `json:"reviews" validate:"dive"`
}

// Review is a guest review attached to a destination.
// Date is a "2006-01-02" calendar date.
type Review struct {
	Author  string `json:"author" validate:"required"`
	Country string `json:"country,omitempty"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
	Avatar  string `json:"avatar,omitempty"`
}

// UserReview is a review as remembered in the author's own history.
type UserReview struct {
	DestinationID   int64  `json:"destId"`
	DestinationName string `json:"destName"`
	Review
}

// AverageRating returns the mean review rating rounded to one decimal.
// Destinations without reviews report 5.0.
func (d Destination) AverageRating() float64 {
	if len(d.Reviews) == 0 {
		return 5.0
	}
	sum := 0
	for _, r := range d.Reviews {
		sum += r.Rating
	}
	return roundTo1(float64(sum) / float64(len(d.Reviews)))
}

// Clone returns a copy that shares no slices with d.
func (d Destination) Clone() Destination {
	c := d
	c.Certifications = cloneStrings(d.Certifications)
	c.ActivityTypes = cloneStrings(d.ActivityTypes)
	c.Images = cloneStrings(d.Images)
	c.SustainabilityPractices = cloneStrings(d.SustainabilityPractices)
	c.Amenities = cloneStrings(d.Amenities)
	if d.Reviews != nil {
		c.Reviews = append([]Review(nil), d.Reviews...)
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// roundHalfUp rounds to the nearest integer with halves rounding up.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTo1(x float64) float64 {
	return roundHalfUp(x*10) / 10
}
