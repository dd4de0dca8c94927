package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForRate(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{0.05, TierDiamond},
		{0.08, TierDiamond},
		{0.10, TierDiamond},
		{0.12, TierPlatinum},
		{0.15, TierPlatinum},
		{0.18, TierGold},
		{0.20, TierGold},
		{0.21, TierStandard},
		{0.30, TierStandard},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierForRate(tc.rate), "rate %.2f", tc.rate)
	}
}

func TestStyleForTier(t *testing.T) {
	assert.Equal(t, "#7c3aed", StyleForTier(TierDiamond).Color)
	assert.Contains(t, StyleForTier(TierGold).Badge, "Gold")

	// Unknown tiers get the Standard treatment.
	assert.Equal(t, StyleForTier(TierStandard), StyleForTier("Bronze"))
	assert.Equal(t, StyleForTier(TierStandard), StyleForTier(""))
}
