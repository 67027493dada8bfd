package model

import "testing"

func TestIndicator_Completion(t *testing.T) {
	tests := []struct {
		name     string
		criteria []Criterion
		want     float64
	}{
		{"no criteria", nil, 0},
		{"none done", []Criterion{{}, {}}, 0},
		{"half done", []Criterion{{IsCompleted: true}, {}}, 0.5},
		{"all done", []Criterion{{IsCompleted: true}, {IsCompleted: true}, {IsCompleted: true}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := &Indicator{Criteria: tt.criteria}
			if got := ind.Completion(); got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}
