// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score maps numeric extraction scores to coarse display tiers.
// Both scorers are pure functions of their inputs.
package score

// ConfidenceTier is the display bucket for a 0–100 confidence score.
type ConfidenceTier string

const (
	ConfidenceHigh    ConfidenceTier = "high"
	ConfidenceMedium  ConfidenceTier = "medium"
	ConfidenceLow     ConfidenceTier = "low"
	ConfidenceVeryLow ConfidenceTier = "very_low"
)

// Confidence tier boundaries. Each boundary is inclusive on the higher
// tier; the intervals cover 0–100 with no gaps.
const (
	highThreshold   = 85
	mediumThreshold = 70
	lowThreshold    = 30
)

// Confidence returns the display tier for a confidence score.
func Confidence(confidence int) ConfidenceTier {
	switch {
	case confidence >= highThreshold:
		return ConfidenceHigh
	case confidence >= mediumThreshold:
		return ConfidenceMedium
	case confidence >= lowThreshold:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ConsistencyTier is the display bucket for cross-source agreement.
type ConsistencyTier string

const (
	ConsistencyStrong   ConsistencyTier = "strong"
	ConsistencyModerate ConsistencyTier = "moderate"
	ConsistencyWeak     ConsistencyTier = "weak"
	ConsistencyUnknown  ConsistencyTier = "unknown"
)

// Consistency returns the agreement tier for a property value. Outside
// automated multi-source mode, or when the field has no value, agreement
// is not evaluated and the tier is Unknown. In automated mode an
// unreported agreement count defaults to a single source.
func Consistency(hasValue, automatedMode bool, agreementCount int) ConsistencyTier {
	if !automatedMode || !hasValue {
		return ConsistencyUnknown
	}
	if agreementCount <= 0 {
		agreementCount = 1
	}
	switch {
	case agreementCount >= 3:
		return ConsistencyStrong
	case agreementCount == 2:
		return ConsistencyModerate
	default:
		return ConsistencyWeak
	}
}
