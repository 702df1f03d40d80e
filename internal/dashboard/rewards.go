package dashboard

import "github.com/t4nm4ymittal/payflow/internal/domain"

// RewardSummary is the rewards screen's derived state.
type RewardSummary struct {
	TotalPoints int
	History     []domain.Reward
}

// SummarizeRewards totals the points over the reward history.
func SummarizeRewards(rewards []domain.Reward) RewardSummary {
	total := 0
	for _, r := range rewards {
		total += r.Points
	}
	return RewardSummary{TotalPoints: total, History: rewards}
}
