package features

import (
	"sort"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

// AssignDonorTiers buckets donors by their share of total giving rank:
// top 10% of donors by amount, next 15% (top 25 cumulative), the middle half,
// and the bottom quartile. Members absent from totals get TierNone.
func AssignDonorTiers(totals map[uuid.UUID]float64) map[uuid.UUID]people.DonorTier {
	tiers := make(map[uuid.UUID]people.DonorTier, len(totals))
	if len(totals) == 0 {
		return tiers
	}

	type donor struct {
		id     uuid.UUID
		amount float64
	}
	donors := make([]donor, 0, len(totals))
	for id, amount := range totals {
		donors = append(donors, donor{id: id, amount: amount})
	}
	sort.Slice(donors, func(a, b int) bool {
		if donors[a].amount != donors[b].amount {
			return donors[a].amount > donors[b].amount
		}
		// Deterministic ordering for equal amounts.
		return donors[a].id.String() < donors[b].id.String()
	})

	n := len(donors)
	for i, d := range donors {
		percentile := float64(i) / float64(n)
		switch {
		case percentile < 0.10:
			tiers[d.id] = people.TierTop10
		case percentile < 0.25:
			tiers[d.id] = people.TierTop25
		case percentile < 0.75:
			tiers[d.id] = people.TierMiddle
		default:
			tiers[d.id] = people.TierBottom
		}
	}
	return tiers
}
