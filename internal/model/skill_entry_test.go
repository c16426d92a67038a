package model

import "testing"

func TestDeriveTierBoundaries(t *testing.T) {
	testCases := []struct {
		score    int
		expected SkillTier
	}{
		{0, TierNone},
		{1, TierUncommon},
		{25, TierUncommon},
		{26, TierRare},
		{50, TierRare},
		{51, TierEpic},
		{75, TierEpic},
		{76, TierLegendary},
		{99, TierLegendary},
		{100, TierMythical},
	}

	for _, tc := range testCases {
		if got := DeriveTier(tc.score); got != tc.expected {
			t.Errorf("DeriveTier(%d) = %s, expected %s", tc.score, got, tc.expected)
		}
	}
}

func TestValidConfidence(t *testing.T) {
	testCases := []struct {
		input    string
		expected Confidence
	}{
		{"low", ConfidenceLow},
		{"medium", ConfidenceMedium},
		{"high", ConfidenceHigh},
		{"HIGH", ConfidenceLow},
		{"", ConfidenceLow},
		{"garbage", ConfidenceLow},
	}

	for _, tc := range testCases {
		if got := ValidConfidence(tc.input); got != tc.expected {
			t.Errorf("ValidConfidence(%q) = %s, expected %s", tc.input, got, tc.expected)
		}
	}
}
