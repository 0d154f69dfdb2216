// Package grading holds the canonical mark-to-grade computation. Every
// percentage and letter grade in the system comes from these functions;
// no other package computes either by any other rule.
package grading

import "math"

// Letter grade boundaries, evaluated top-down.
const (
	GradeAPlus = "A+"
	GradeA     = "A"
	GradeBPlus = "B+"
	GradeB     = "B"
	GradeC     = "C"
	GradeD     = "D"
	GradeF     = "F"
)

// Percentage converts obtained/total marks into a percentage rounded to two
// decimals. A zero total yields 0 rather than a division error.
func Percentage(obtained, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(obtained/total*100*100) / 100
}

// Letter maps a percentage to its letter grade.
func Letter(percentage float64) string {
	switch {
	case percentage >= 90:
		return GradeAPlus
	case percentage >= 80:
		return GradeA
	case percentage >= 70:
		return GradeBPlus
	case percentage >= 60:
		return GradeB
	case percentage >= 50:
		return GradeC
	case percentage >= 40:
		return GradeD
	default:
		return GradeF
	}
}
