package catalog

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// RawInvestor is one entry of the investors.json dataset.
type RawInvestor struct {
	Name                string       `json:"Name"`
	Location            string       `json:"Location"`
	TicketSize          Text         `json:"Preferred Ticket Size"`
	Industries          List         `json:"Investment Industries"`
	Stages              List         `json:"Investment Stages"`
	NumInvestments      Number       `json:"Number of Investments"`
	RecentActivityYear  Number       `json:"Recent Activity Year"`
	Role                string       `json:"Investment Role"`
	SuccessRate         Text         `json:"Success Rate"`
	PastInvestmentTypes List         `json:"Past Investment Types"`
	Bio                 string       `json:"Investor Bio"`
	Startups            []RawStartup `json:"Invested Startups"`
}

// RawStartup is a startup listed under an investor in the dataset.
type RawStartup struct {
	Name            string `json:"Startup Name"`
	Industry        string `json:"Industry"`
	Location        string `json:"Location"`
	FundingStage    string `json:"Funding Stage"`
	BusinessModel   string `json:"Business Model"`
	RevenueStage    string `json:"Revenue Stage"`
	CustomerSegment string `json:"Customer Segment"`
	TeamSize        Text   `json:"Team Size"`
	FoundedYear     Text   `json:"Founded Year"`
}

// Text decodes a JSON string or number as text. Null decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*t = Text(data)
	default:
		return fmt.Errorf("%w: expected string or number, got %s", ErrInvalidDataset, data)
	}
	return nil
}

// Number decodes a JSON number or numeric string as an int. Null and
// non-numeric strings decode to 0.
type Number int

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// List decodes a JSON array of strings, or a single comma-separated string.
// Blank entries are dropped.
type List []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var items []string
	switch {
	case bytes.Equal(data, []byte("null")):
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		items = strings.Split(s, ",")
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		}
	}

	out := make(List, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// LoadDataset decodes an investors.json document.
func LoadDataset(r io.Reader) ([]RawInvestor, error) {
	var investors []RawInvestor
	if err := json.NewDecoder(r).Decode(&investors); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return investors, nil
}
