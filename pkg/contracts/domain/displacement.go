package domain

import (
	"time"
)

// SettlementRecord is one settlement's displacement counts for a reporting
// period, as published in the legacy settlement CSV.
type SettlementRecord struct {
	Region              string    `json:"region" csv:"ADM1NameEnglish" validate:"required"`
	SubRegion           string    `json:"sub_region" csv:"ADM2NameEnglish"`
	SettlementCode      string    `json:"settlement_code" csv:"SettlementCode"`
	Arrivals            float64   `json:"arrivals" csv:"Arrival IDPs"`
	Departures          float64   `json:"departures" csv:"Fled IDPs"`
	Returns             float64   `json:"returns" csv:"Returned IDPs"`
	OutMigrants         float64   `json:"out_migrants" csv:"Outmigrants"`
	ReturneesFromAbroad float64   `json:"returnees_from_abroad" csv:"Returnees from Abroad"`
	Period              time.Time `json:"period,omitempty"`
}

// NetDisplacementRecord is a settlement record with its derived net
// displacement. NetDisplacement is computed once at construction.
type NetDisplacementRecord struct {
	SettlementRecord
	NetDisplacement float64 `json:"net_displacement"`
}

// NewNetDisplacementRecord derives net displacement for r:
// (arrivals - departures) + (returns - out-migrants) + returnees from abroad.
func NewNetDisplacementRecord(r SettlementRecord) NetDisplacementRecord {
	return NetDisplacementRecord{
		SettlementRecord: r,
		NetDisplacement: (r.Arrivals - r.Departures) +
			(r.Returns - r.OutMigrants) +
			r.ReturneesFromAbroad,
	}
}

// ProvinceAggregate sums arrivals and departures for one region. Period is
// zero for region-only aggregates and first-of-month for dated ones.
type ProvinceAggregate struct {
	Region      string    `json:"region" csv:"ADM1NameEnglish"`
	Period      time.Time `json:"period,omitempty" csv:"Date"`
	Arrivals    float64   `json:"arrivals" csv:"Arrival IDPs"`
	Departures  float64   `json:"departures" csv:"Fled IDPs"`
	Settlements int       `json:"settlements"`
}

// Dated reports whether the aggregate carries a month period
func (p ProvinceAggregate) Dated() bool {
	return !p.Period.IsZero()
}
