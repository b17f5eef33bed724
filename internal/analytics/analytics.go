// Package analytics derives behavioral reports from immutable usage-log
// snapshots: temporal usage profiles, pairwise device co-usage,
// area-vs-usage correlation and rule-based anomaly scanning.
//
// Every analyzer is a pure, stateless function of the full log set plus
// pre-batched user/device lookup maps. Logs with zero-value timestamps
// or dangling user/device references are skipped, never fatal. All
// aggregates are keyed by device name, not id, so two devices sharing a
// name merge in the output; this mirrors the upstream reporting format
// and is intentional.
package analytics

import "math"

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
