package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ── weight rule errors ──

var (
	ErrWeightInvalid      = errors.New("قيمة الوزن غير صالحة")
	ErrWeightTotalInvalid = errors.New("يجب أن يكون مجموع أوزان معايير الأداء 100%")
)

// TotalWeight every standards list must add up to this
const TotalWeight = 100

// plain decimal: no sign, exponent or hex form
var weightPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseWeight "10%", " 7.5 % " and "10" are all accepted
func ParseWeight(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	if !weightPattern.MatchString(v) {
		return 0, fmt.Errorf("%w: %q", ErrWeightInvalid, raw)
	}

	w, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, fmt.Errorf("%w: %q", ErrWeightInvalid, raw)
	}
	return w, nil
}

// SumWeights parses and adds the weights
func SumWeights(weights []string) (float64, error) {
	var sum float64
	for _, raw := range weights {
		w, err := ParseWeight(raw)
		if err != nil {
			return 0, err
		}
		sum += w
	}
	return sum, nil
}

// ValidateWeights ErrWeightTotalInvalid unless the weights sum to exactly 100
func ValidateWeights(weights []string) error {
	sum, err := SumWeights(weights)
	if err != nil {
		return err
	}
	if math.Abs(sum-TotalWeight) > 1e-9 {
		return fmt.Errorf("%w (%s%%)", ErrWeightTotalInvalid, strconv.FormatFloat(sum, 'f', -1, 64))
	}
	return nil
}
