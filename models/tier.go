package models

// Tier is the priority class of a plan.
type Tier string

const (
	TierPrimary    Tier = "primary"
	TierSecondary  Tier = "secondary"
	TierAdditional Tier = "additional"
)

// KnownTiers lists the tiers in display order.
var KnownTiers = []Tier{TierPrimary, TierSecondary, TierAdditional}

// Rank is the position of t in KnownTiers. Unknown tiers rank after all known ones.
func (t Tier) Rank() int {
	for i, known := range KnownTiers {
		if t == known {
			return i
		}
	}
	return len(KnownTiers)
}

func (t Tier) Known() bool {
	return t.Rank() < len(KnownTiers)
}

func (t Tier) String() string {
	return string(t)
}
