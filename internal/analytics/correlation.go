package analytics

import (
	"math"

	"smarthome-analytics-backend/internal/model"
)

// Area bands partition users by dwelling size, in m².
const (
	BandSmall  = "small (<=80)"
	BandMedium = "medium (81-120)"
	BandLarge  = "large (>120)"
)

// Outlier reason tags.
const (
	OutlierLargeHomeLowUsage  = "large-home, low-usage"
	OutlierSmallHomeHighUsage = "small-home, high-usage"
)

// AreaUsagePoint is one (house area, usage count) observation.
type AreaUsagePoint struct {
	UserID     int64   `json:"user_id"`
	HouseArea  float64 `json:"house_area"`
	UsageCount int     `json:"usage_count"`
}

// AreaUsageOutlier is a flagged observation with its reason tag.
type AreaUsageOutlier struct {
	AreaUsagePoint
	Reason string `json:"outlier_reason"`
}

// AreaBandStats summarizes one area band.
type AreaBandStats struct {
	UserCount int     `json:"user_count"`
	AvgUsage  float64 `json:"avg_usage"`
}

// AreaUsageSummary holds the dataset-level statistics.
type AreaUsageSummary struct {
	TotalUsers             int     `json:"total_users"`
	CorrelationCoefficient float64 `json:"correlation_coefficient"`
	CorrelationStrength    string  `json:"correlation_strength"`
	AvgArea                float64 `json:"avg_area"`
	AvgUsage               float64 `json:"avg_usage"`
	MaxArea                float64 `json:"max_area"`
	MaxUsage               float64 `json:"max_usage"`
	MinArea                float64 `json:"min_area"`
	MinUsage               float64 `json:"min_usage"`
}

// AreaUsageReport is the correlator output. When the dataset cannot
// support the analysis (fewer than two usable points, or zero variance
// in either variable) only Message is set.
type AreaUsageReport struct {
	Summary       *AreaUsageSummary        `json:"summary,omitempty"`
	GroupAnalysis map[string]AreaBandStats `json:"group_analysis,omitempty"`
	Outliers      []AreaUsageOutlier       `json:"outliers,omitempty"`
	RawData       []AreaUsagePoint         `json:"raw_data,omitempty"`
	Message       string                   `json:"message,omitempty"`
}

// InsufficientData reports whether the analysis was skipped.
func (r *AreaUsageReport) InsufficientData() bool {
	return r.Message != ""
}

// AreaUsage correlates dwelling size with device usage counts.
// Users without a positive house area or without any usage logs are
// excluded before analysis.
func AreaUsage(users []model.User, logs []model.UsageLog) *AreaUsageReport {
	usageCount := make(map[int64]int)
	for _, l := range logs {
		usageCount[l.UserID]++
	}

	var data []AreaUsagePoint
	for _, u := range users {
		n, ok := usageCount[u.ID]
		if !ok || u.HouseArea <= 0 {
			continue
		}
		data = append(data, AreaUsagePoint{UserID: u.ID, HouseArea: u.HouseArea, UsageCount: n})
	}

	// Pearson needs at least two points and nonzero variance.
	if len(data) < 2 {
		return &AreaUsageReport{Message: "insufficient data"}
	}

	areas := make([]float64, len(data))
	usages := make([]float64, len(data))
	for i, d := range data {
		areas[i] = d.HouseArea
		usages[i] = float64(d.UsageCount)
	}

	corr, ok := pearson(areas, usages)
	if !ok {
		return &AreaUsageReport{Message: "insufficient data"}
	}

	groups := make(map[string]AreaBandStats, 3)
	bandUsages := map[string][]float64{BandSmall: nil, BandMedium: nil, BandLarge: nil}
	for _, d := range data {
		bandUsages[band(d.HouseArea)] = append(bandUsages[band(d.HouseArea)], float64(d.UsageCount))
	}
	for label, vals := range bandUsages {
		groups[label] = AreaBandStats{UserCount: len(vals), AvgUsage: mean(vals)}
	}

	usageMean := mean(usages)
	usageStd := stdDev(usages, usageMean)
	thresholdLow := usageMean - 1.2*usageStd
	thresholdHigh := usageMean + 1.2*usageStd

	var outliers []AreaUsageOutlier
	for _, d := range data {
		switch {
		case d.HouseArea > 120 && float64(d.UsageCount) < thresholdLow:
			outliers = append(outliers, AreaUsageOutlier{AreaUsagePoint: d, Reason: OutlierLargeHomeLowUsage})
		case d.HouseArea <= 80 && float64(d.UsageCount) > thresholdHigh:
			outliers = append(outliers, AreaUsageOutlier{AreaUsagePoint: d, Reason: OutlierSmallHomeHighUsage})
		}
	}

	return &AreaUsageReport{
		Summary: &AreaUsageSummary{
			TotalUsers:             len(data),
			CorrelationCoefficient: roundTo(corr, 4),
			CorrelationStrength:    classifyCorrelation(corr),
			AvgArea:                mean(areas),
			AvgUsage:               usageMean,
			MaxArea:                maxOf(areas),
			MaxUsage:               maxOf(usages),
			MinArea:                minOf(areas),
			MinUsage:               minOf(usages),
		},
		GroupAnalysis: groups,
		Outliers:      outliers,
		RawData:       data,
	}
}

func band(area float64) string {
	switch {
	case area <= 80:
		return BandSmall
	case area <= 120:
		return BandMedium
	default:
		return BandLarge
	}
}

// classifyCorrelation buckets the absolute Pearson coefficient into a
// qualitative strength label.
func classifyCorrelation(corr float64) string {
	switch abs := math.Abs(corr); {
	case abs > 0.7:
		return "strong"
	case abs > 0.4:
		return "moderate"
	case abs > 0.2:
		return "weak"
	default:
		return "none"
	}
}

// pearson computes the Pearson correlation coefficient of two equal
// length vectors. ok is false when either vector has zero variance.
func pearson(xs, ys []float64) (r float64, ok bool) {
	n := float64(len(xs))
	mx, my := mean(xs), mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 || n < 2 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdDev is the population standard deviation.
func stdDev(vals []float64, m float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
