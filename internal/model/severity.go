package model

import "fmt"

// Severity classifies a security event. It is a closed enum: values
// outside the three constants are rejected at construction instead of
// being carried as opaque strings and sorted last.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for sorting, most urgent first.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// ParseSeverity validates a raw severity string.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := severityRank[sev]; !ok {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// Rank returns the sort rank of the severity; lower sorts first.
func (s Severity) Rank() int {
	r, ok := severityRank[s]
	if !ok {
		// Unknown values should never be constructed, but keep them
		// behind the known ones if one slips in through raw SQL.
		return len(severityRank)
	}
	return r
}

// Valid reports whether the severity is one of the known constants.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}
