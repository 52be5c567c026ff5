// Package query validates recommendation requests and converts them into
// core.Query values.
package query

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/poiesic/venturematch/core"
)

var (
	// ErrInvalidRequest indicates a request failed decoding or validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// Request is the JSON payload of a recommendation request.
type Request struct {
	Industries       []string `json:"industries" validate:"max=50,dive,max=200"`
	Stages           []string `json:"stages" validate:"max=50,dive,max=200"`
	Type             string   `json:"rs_type" validate:"omitempty,oneof=content collaborative hybrid startup_similarity"`
	ActivityWeight   *float64 `json:"activityWeight,omitempty" validate:"omitempty,gte=0,lte=100"`
	InvestmentWeight *float64 `json:"investmentWeight,omitempty" validate:"omitempty,gte=0,lte=100"`
	TeamSize         string   `json:"teamSize,omitempty" validate:"max=100"`
	FoundedYear      string   `json:"foundedYear,omitempty" validate:"max=100"`
	Location         string   `json:"location,omitempty" validate:"max=200"`
	BusinessModel    string   `json:"businessModel,omitempty" validate:"max=200"`
	RevenueStage     string   `json:"revenueStage,omitempty" validate:"max=200"`
	CustomerSegment  string   `json:"customerSegment,omitempty" validate:"max=200"`
	Limit            int      `json:"limit,omitempty" validate:"gte=0,lte=100"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Decode reads a JSON request from r, applies defaults and validates it.
func Decode(r io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Normalize trims and lowercases the recommender type and defaults it to
// content.
func (r *Request) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(core.RecommenderContent)
	}
}

// Validate normalizes r and checks it against its field constraints.
func (r *Request) Validate() error {
	r.Normalize()

	err := Validator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(messages, "; "))
}

// ToQuery converts a validated request into a core.Query.
func (r *Request) ToQuery() core.Query {
	return core.Query{
		Type: core.RecommenderType(r.Type),
		Attributes: core.Attributes{
			Industries:      r.Industries,
			Stages:          r.Stages,
			Location:        r.Location,
			TeamSize:        r.TeamSize,
			FoundedYear:     r.FoundedYear,
			BusinessModel:   r.BusinessModel,
			RevenueStage:    r.RevenueStage,
			CustomerSegment: r.CustomerSegment,
		},
		ActivityWeight:   r.ActivityWeight,
		InvestmentWeight: r.InvestmentWeight,
		Limit:            r.Limit,
	}
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds maximum length %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
