package core

import (
	"errors"
	"testing"
)

func testWidths() [DimensionCount]int {
	return [DimensionCount]int{3, 2, 2, 4, 3, 1, 1, 1}
}

func testBundle(widths [DimensionCount]int) FeatureBundle {
	var b FeatureBundle
	for _, d := range Dimensions {
		b[d] = make(Vector, widths[d])
	}
	return b
}

func TestValidateInvestor(t *testing.T) {
	widths := testWidths()
	narrow := testBundle(widths)
	narrow[DimensionLocation] = Vector{1}

	tests := []struct {
		name     string
		investor *Investor
		wantErr  error
	}{
		{
			name:     "valid investor",
			investor: &Investor{Name: "Accel", Features: testBundle(widths)},
			wantErr:  nil,
		},
		{
			name:     "valid investor with all-zero bundle",
			investor: &Investor{Id: 7, Name: "Index", Features: testBundle(widths)},
			wantErr:  nil,
		},
		{
			name:     "nil investor",
			investor: nil,
			wantErr:  ErrInvalidInvestor,
		},
		{
			name:     "empty name",
			investor: &Investor{Features: testBundle(widths)},
			wantErr:  ErrEmptyName,
		},
		{
			name:     "width mismatch",
			investor: &Investor{Name: "Accel", Features: narrow},
			wantErr:  ErrBundleWidth,
		},
		{
			name:     "missing vectors",
			investor: &Investor{Name: "Accel"},
			wantErr:  ErrBundleWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInvestor(tt.investor, widths)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateInvestor() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateInvestor() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidInvestor) {
				t.Errorf("ValidateInvestor() error = %v, want wrapped ErrInvalidInvestor", err)
			}
		})
	}
}

func TestValidateStartup(t *testing.T) {
	widths := testWidths()
	wide := testBundle(widths)
	wide[DimensionIndustry] = Vector{0, 0, 0, 1}

	tests := []struct {
		name    string
		startup *Startup
		wantErr error
	}{
		{
			name:    "valid startup",
			startup: &Startup{Id: "0_0", Name: "Acme", Features: testBundle(widths)},
		},
		{
			name:    "valid startup without name",
			startup: &Startup{Id: "0_1", Features: testBundle(widths)},
		},
		{
			name:    "nil startup",
			startup: nil,
			wantErr: ErrInvalidStartup,
		},
		{
			name:    "empty id",
			startup: &Startup{Name: "Acme", Features: testBundle(widths)},
			wantErr: ErrEmptyStartupID,
		},
		{
			name:    "width mismatch",
			startup: &Startup{Id: "1_0", Features: wide},
			wantErr: ErrBundleWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStartup(tt.startup, widths)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateStartup() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStartup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
