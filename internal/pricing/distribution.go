package pricing

import "math"

// ScoringProbability returns the zero-inflated Poisson mass at k goals.
// pZero is the extra mass placed on k = 0.
func ScoringProbability(lambda float64, k int, pZero float64) float64 {
	if k < 0 || lambda < 0 || math.IsNaN(lambda) {
		return 0
	}
	poisson := poissonPMF(lambda, k)
	if k == 0 {
		return pZero + (1-pZero)*poisson
	}
	return (1 - pZero) * poisson
}

// poissonPMF evaluates lambda^k e^-lambda / k! in log space
func poissonPMF(lambda float64, k int) float64 {
	if lambda == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	logFact, _ := math.Lgamma(float64(k + 1))
	return math.Exp(float64(k)*math.Log(lambda) - lambda - logFact)
}

// scoringRow returns the masses for 0..size-1 goals
func scoringRow(lambda float64, size int, pZero float64) []float64 {
	row := make([]float64, size)
	for k := range row {
		row[k] = ScoringProbability(lambda, k, pZero)
	}
	return row
}
