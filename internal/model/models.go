// Package model defines shared data structures for the monitor service.
package model

// GroupedOffer mirrors one entry of the job board's groupedOffers payload.
// One grouped offer may carry several location variants; the first variant
// is the one shown in notifications.
type GroupedOffer struct {
	GroupID           string         `json:"groupId"`
	CompanyName       string         `json:"companyName"`
	JobTitle          string         `json:"jobTitle"`
	LastPublicated    string         `json:"lastPublicated"`
	Technologies      []string       `json:"technologies"`
	PositionLevels    []string       `json:"positionLevels"`
	SalaryDisplayText string         `json:"salaryDisplayText,omitempty"`
	Offers            []OfferVariant `json:"offers"`
}

// OfferVariant is a per-location variant nested inside a GroupedOffer.
type OfferVariant struct {
	DisplayWorkplace string `json:"displayWorkplace"`
	OfferAbsoluteURI string `json:"offerAbsoluteUri"`
}

// Workplace returns the display workplace of the first variant, or "".
func (o GroupedOffer) Workplace() string {
	if len(o.Offers) == 0 {
		return ""
	}
	return o.Offers[0].DisplayWorkplace
}

// Link returns the absolute offer link of the first variant, or "".
func (o GroupedOffer) Link() string {
	if len(o.Offers) == 0 {
		return ""
	}
	return o.Offers[0].OfferAbsoluteURI
}

// OfferSnapshot is the attribute set persisted per notified offer.
// It is written once at first sighting and never updated afterwards.
type OfferSnapshot struct {
	CompanyName       string   `json:"companyName"`
	JobTitle          string   `json:"jobTitle"`
	LastPublicated    string   `json:"lastPublicated"`
	Technologies      []string `json:"technologies"`
	DisplayWorkplace  string   `json:"displayWorkplace"`
	OfferAbsoluteURI  string   `json:"offerAbsoluteUri"`
	PositionLevels    []string `json:"positionLevels"`
	SalaryDisplayText string   `json:"salaryDisplayText"`
}

// Snapshot flattens a GroupedOffer into the persisted attribute set.
func (o GroupedOffer) Snapshot() OfferSnapshot {
	return OfferSnapshot{
		CompanyName:       o.CompanyName,
		JobTitle:          o.JobTitle,
		LastPublicated:    o.LastPublicated,
		Technologies:      o.Technologies,
		DisplayWorkplace:  o.Workplace(),
		OfferAbsoluteURI:  o.Link(),
		PositionLevels:    o.PositionLevels,
		SalaryDisplayText: o.SalaryDisplayText,
	}
}
