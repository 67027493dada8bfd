package service

import (
	"errors"
	"testing"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"10%", 10, false},
		{"5%", 5, false},
		{" 7.5 % ", 7.5, false},
		{"10", 10, false},
		{"0%", 0, false},
		{"", 0, true},
		{"%", 0, true},
		{"abc%", 0, true},
		{"-5%", 0, true},
		{"NaN", 0, true},
		{"0x1p3%", 0, true},
		{"1e1", 0, true},
		{"+10%", 0, true},
		{"1.2.3%", 0, true},
		{"10%%", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeight(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrWeightInvalid) {
					t.Fatalf("want ErrWeightInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []string
		wantErr error
	}{
		{"seed weights", []string{"10%", "10%", "10%", "10%", "10%", "10%", "10%", "5%", "5%", "10%", "10%"}, nil},
		{"fractions", []string{"33.5%", "33.5%", "33%"}, nil},
		{"under", []string{"50%", "40%"}, ErrWeightTotalInvalid},
		{"over", []string{"60%", "50%"}, ErrWeightTotalInvalid},
		{"empty", nil, ErrWeightTotalInvalid},
		{"unparsable", []string{"50%", "fifty"}, ErrWeightInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(tt.weights)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("want no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultStandards_WeightsSumTo100(t *testing.T) {
	standards := DefaultStandards()
	if len(standards) != 11 {
		t.Fatalf("want 11 standards, got %d", len(standards))
	}

	wantWeights := []float64{10, 10, 10, 10, 10, 10, 10, 5, 5, 10, 10}
	weights := make([]string, 0, len(standards))
	var sum float64
	for i, st := range standards {
		w, err := ParseWeight(st.Weight)
		if err != nil {
			t.Fatalf("standard %d: %v", i, err)
		}
		if w != wantWeights[i] {
			t.Errorf("standard %d (%s): want weight %v, got %v", i, st.Title, wantWeights[i], w)
		}
		sum += w
		weights = append(weights, st.Weight)
	}

	if sum != 100 {
		t.Errorf("want total 100, got %v", sum)
	}
	if err := ValidateWeights(weights); err != nil {
		t.Errorf("default standards must validate: %v", err)
	}
}

func TestDefaultStandards_OrderAndContent(t *testing.T) {
	standards := DefaultStandards()
	if standards[0].Title != "أداء الواجبات الوظيفية" {
		t.Errorf("first standard should be أداء الواجبات الوظيفية, got %s", standards[0].Title)
	}
	if standards[10].Title != "تنوع أساليب التقويم" {
		t.Errorf("last standard should be تنوع أساليب التقويم, got %s", standards[10].Title)
	}

	seen := make(map[string]bool)
	for _, st := range standards {
		if seen[st.Title] {
			t.Errorf("duplicate standard %s", st.Title)
		}
		seen[st.Title] = true
		if st.Icon == "" || st.Description == "" || len(st.SuggestedEvidence) == 0 {
			t.Errorf("standard %s should carry icon, description and suggested evidence", st.Title)
		}
	}
}
