package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ExportPlatform names the producer in exported itinerary documents.
const ExportPlatform = "ETCP — Eco-Tourism Cloud Platform"

// ItineraryExport is the downloadable itinerary document. Its JSON shape is a
// compatibility contract: carbon values and the total cost are rendered as
// display strings.
type ItineraryExport struct {
	Generated    string                `json:"generated"`
	Platform     string                `json:"platform"`
	Destinations []ExportedDestination `json:"destinations"`
	Summary      ExportSummary         `json:"summary"`
}

// ExportedDestination is one planned stay in an ItineraryExport.
type ExportedDestination struct {
	Name                 string   `json:"name"`
	Location             string   `json:"location"`
	Country              string   `json:"country"`
	Nights               int      `json:"nights"`
	PricePerNight        float64  `json:"pricePerNight"`
	EstimatedCost        float64  `json:"estimatedCost"`
	SustainabilityRating int      `json:"sustainabilityRating"`
	Certifications       []string `json:"certifications"`
	CarbonFootprint      string   `json:"carbonFootprint"` // "<n> kg CO2 total"
}

// ExportSummary totals an ItineraryExport.
type ExportSummary struct {
	TotalDestinations    int    `json:"totalDestinations"`
	TotalNights          int    `json:"totalNights"`
	EstimatedTotalCost   string `json:"estimatedTotalCost"`   // "$1,234"
	TotalCarbonFootprint string `json:"totalCarbonFootprint"` // "<n> kg CO2"
}

const (
	entryCarbonSuffix = " kg CO2 total"
	totalCarbonSuffix = " kg CO2"
)

// Export projects the itinerary into an ItineraryExport generated at now.
// It does not modify the itinerary.
func (it *Itinerary) Export(now time.Time) ItineraryExport {
	sum := it.Summarize()
	out := ItineraryExport{
		Generated:    now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Platform:     ExportPlatform,
		Destinations: make([]ExportedDestination, 0, len(it.entries)),
		Summary: ExportSummary{
			TotalDestinations:    sum.TotalDestinations,
			TotalNights:          sum.TotalNights,
			EstimatedTotalCost:   FormatCurrency(sum.TotalCost),
			TotalCarbonFootprint: formatNumber(sum.TotalCarbon) + totalCarbonSuffix,
		},
	}
	for _, e := range it.entries {
		nights := float64(e.Nights)
		certs := cloneStrings(e.Certifications)
		if certs == nil {
			certs = []string{}
		}
		out.Destinations = append(out.Destinations, ExportedDestination{
			Name:                 e.Name,
			Location:             e.Location,
			Country:              e.Country,
			Nights:               e.Nights,
			PricePerNight:        e.PricePerNight,
			EstimatedCost:        e.PricePerNight * nights,
			SustainabilityRating: e.SustainabilityRating,
			Certifications:       certs,
			CarbonFootprint:      formatNumber(e.CarbonFootprint*nights) + entryCarbonSuffix,
		})
	}
	return out
}

// ParseExport decodes an exported itinerary document.
func ParseExport(r io.Reader) (ItineraryExport, error) {
	var doc ItineraryExport
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ItineraryExport{}, fmt.Errorf("domain.ParseExport: %w", err)
	}
	return doc, nil
}

// Summarize re-derives the itinerary summary from the exported entries.
// For an export produced by Itinerary.Export it equals the live summary at
// export time.
func (x ItineraryExport) Summarize() (ItinerarySummary, error) {
	var s ItinerarySummary
	ratings := 0
	for i, d := range x.Destinations {
		carbon, err := parseCarbon(d.CarbonFootprint, entryCarbonSuffix)
		if err != nil {
			return ItinerarySummary{}, fmt.Errorf("domain.ItineraryExport.Summarize: destination %d: %w", i, err)
		}
		s.TotalNights += d.Nights
		s.TotalCarbon += carbon
		s.TotalCost += d.EstimatedCost
		ratings += d.SustainabilityRating
	}
	s.TotalDestinations = len(x.Destinations)
	if s.TotalDestinations > 0 {
		s.AvgSustainability = roundTo1(float64(ratings) / float64(s.TotalDestinations))
	}
	s.TreesToOffset = TreesToOffset(s.TotalCarbon)
	return s, nil
}

func parseCarbon(s, suffix string) (float64, error) {
	v, ok := strings.CutSuffix(s, suffix)
	if !ok {
		return 0, fmt.Errorf("%w: carbon footprint %q", ErrValidation, s)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: carbon footprint %q", ErrValidation, s)
	}
	return f, nil
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount in US dollars with digit grouping and at
// most three fraction digits, e.g. 1234.5 → "$1,234.5".
func FormatCurrency(amount float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(3)))
}

// formatNumber renders v in its shortest exact decimal form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
