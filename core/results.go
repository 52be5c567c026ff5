package core

import "math"

// InvestorMatch is an investor-oriented recommendation record.
type InvestorMatch struct {
	Id                  ID       `json:"id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	Score               float64  `json:"score"`
	Bio                 string   `json:"bio,omitempty"`
	PastInvestmentTypes []string `json:"pastInvestmentTypes,omitempty"`
	InvestmentStages    []string `json:"investmentStages,omitempty"`
	TicketSize          string   `json:"ticketSize,omitempty"`
	RecentActivityYear  int      `json:"recentActivityYear,omitempty"`
	NumInvestments      int      `json:"numInvestments,omitempty"`
}

// StartupMatch is a startup-oriented recommendation record.
type StartupMatch struct {
	Id           StartupID `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry"`
	Location     string    `json:"location"`
	FundingStage string    `json:"fundingStage"`
	Score        float64   `json:"score"`
	InvestorName string    `json:"investorName,omitempty"`
}

// Response carries the ordered results of one query.
// Exactly one of Investors or Startups is populated, depending on Type.
type Response struct {
	Type      RecommenderType `json:"type"`
	Investors []InvestorMatch `json:"-"`
	Startups  []StartupMatch  `json:"-"`
}

// Records returns the populated result list as a JSON-friendly value.
// It never returns nil so empty results serialize as [].
func (r *Response) Records() any {
	if r.Type == RecommenderStartupSimilarity {
		if r.Startups == nil {
			return []StartupMatch{}
		}
		return r.Startups
	}
	if r.Investors == nil {
		return []InvestorMatch{}
	}
	return r.Investors
}

// Len returns the number of result records.
func (r *Response) Len() int {
	return len(r.Investors) + len(r.Startups)
}

// RoundScore rounds a score to three decimals for presentation.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}
