package plan

import "time"

// Product types and statuses, matching the dashboard's vocabulary.
const (
	TypeSIP     = "SIP"
	TypeLumpsum = "LUMPSUM"

	StatusActive      = "ACTIVE"
	StatusDeactivated = "DEACTIVATED"
)

// Plan represents an investment product offered on the platform. Rates are
// annual percentages; the monthly rate and the projection figures are derived
// on every write rather than trusted from the form.
type Plan struct {
	ID             string
	ProductName    string
	ROIAAR         float64 // annual rate, percent
	ROIAMR         float64 // monthly rate, percent, derived
	MinInvestment  float64 // rupees
	InvestmentTerm int     // years
	ProductType    string
	Status         string
	TotalGain      float64 // derived
	MaturityValue  float64 // derived
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
