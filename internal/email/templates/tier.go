package templates

// Commission tier names. A lower commission rate means a higher tier.
const (
	TierDiamond  = "Diamond"
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierStandard = "Standard"
)

// TierForRate maps a commission rate to its tier. Boundary rates (exactly
// 0.10 / 0.15 / 0.20) select the lower-fee tier.
func TierForRate(rate float64) string {
	switch {
	case rate <= 0.10:
		return TierDiamond
	case rate <= 0.15:
		return TierPlatinum
	case rate <= 0.20:
		return TierGold
	default:
		return TierStandard
	}
}

// TierStyle is the visual treatment for a tier badge in partner emails.
type TierStyle struct {
	Color string // accent hex
	Badge string // short label shown in the tier chip
}

var tierStyles = map[string]TierStyle{
	TierDiamond:  {Color: "#7c3aed", Badge: "💎 Diamond"},
	TierPlatinum: {Color: "#475569", Badge: "★ Platinum"},
	TierGold:     {Color: "#d97706", Badge: "★ Gold"},
	TierStandard: {Color: "#2563eb", Badge: "Standard"},
}

// StyleForTier looks up the visual treatment, falling back to Standard for
// unrecognized tier names.
func StyleForTier(tier string) TierStyle {
	if s, ok := tierStyles[tier]; ok {
		return s
	}
	return tierStyles[TierStandard]
}
