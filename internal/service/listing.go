package service

import (
	"strings"

	"github.com/pkordes/ecotrip/internal/domain"
)

// Defaults applied to provider listings that leave them out.
const (
	defaultListingCarbon    = 10
	defaultListingRenewable = 75
	listingRegion           = "Custom"
	listingImage            = "https://images.unsplash.com/photo-1448375240586-882707db888b?w=800&q=80"
)

// ListingInput is a provider's submission of a new destination.
type ListingInput struct {
	Name                 string   `json:"name" validate:"required"`
	Location             string   `json:"location" validate:"required"`
	Country              string   `json:"country"`
	PricePerNight        float64  `json:"pricePerNight" validate:"gt=0"`
	SustainabilityRating int      `json:"sustainabilityRating" validate:"gte=1,lte=5"`
	Description          string   `json:"description" validate:"required"`
	Practices            []string `json:"sustainabilityPractices" validate:"min=1"`
	Certifications       []string `json:"certifications"`
	Activities           []string `json:"activityTypes"`
	CarbonFootprint      *float64 `json:"carbonFootprint" validate:"omitempty,gte=0"`
	RenewableEnergy      *int     `json:"renewableEnergy" validate:"omitempty,gte=0,lte=100"`
}

// toDestination validates in and fills the fields providers do not supply.
// The id is left for the catalog to assign.
func (in ListingInput) toDestination() (domain.Destination, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	in.Practices = nonBlank(in.Practices)

	if err := checkStruct(in); err != nil {
		return domain.Destination{}, err
	}

	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = in.Location
	}
	carbon := float64(defaultListingCarbon)
	if in.CarbonFootprint != nil {
		carbon = *in.CarbonFootprint
	}
	renewable := defaultListingRenewable
	if in.RenewableEnergy != nil {
		renewable = *in.RenewableEnergy
	}

	return domain.Destination{
		Name:                    in.Name,
		Location:                in.Location,
		Country:                 country,
		Region:                  listingRegion,
		SustainabilityRating:    in.SustainabilityRating,
		Certifications:          nonNil(in.Certifications),
		ActivityTypes:           nonNil(in.Activities),
		PricePerNight:           in.PricePerNight,
		HeroImage:               listingImage,
		Images:                  []string{listingImage},
		Description:             in.Description,
		SustainabilityPractices: in.Practices,
		CarbonFootprint:         carbon,
		RenewableEnergy:         renewable,
		WaterConservation:       "Water conservation practices in place.",
		CommunityImpact:         "Supports local community employment and development.",
		WildlifeProtection:      "Operates in harmony with local wildlife.",
		Amenities:               nonNil(in.Activities),
		Reviews:                 []domain.Review{},
	}, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}
