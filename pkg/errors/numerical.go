package errors

import (
	"math"
)

// unstable reports whether v cannot appear in a probability table.
// Negative infinity is allowed because it is log(0).
func unstable(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 1)
}

// CheckNumericalStability checks if values contain NaN or +Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, index int) error {
	for _, v := range values {
		if unstable(v) {
			return NewNumericalInstabilityError(operation, values, index)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, index int) error {
	if unstable(value) {
		return NewNumericalInstabilityError(operation, []float64{value}, index)
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
// The reported index is the first offending row.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		var unstableValues []float64
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if unstable(v) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					// Limit the number of collected values for error message
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			return NewNumericalInstabilityError(operation, unstableValues, i)
		}
	}

	return nil
}
