package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CampaignStats are the figures derived from a campaign's contributions and
// expenses. They are never stored.
type CampaignStats struct {
	Confirmed         decimal.Decimal
	Pledged           decimal.Decimal
	Expenses          decimal.Decimal
	Balance           decimal.Decimal
	Shortfall         decimal.Decimal
	Percent           int64
	ContributionCount int
	ExpenseCount      int
}

// ComputeCampaignStats aggregates the contributions and expenses of one
// campaign against its goal. Percent is 0 for a zero goal and is not capped
// at 100.
func ComputeCampaignStats(goal decimal.Decimal, contributions []Contribution, expenses []Expense) CampaignStats {
	stats := CampaignStats{
		Confirmed:         decimal.Zero,
		Pledged:           decimal.Zero,
		Expenses:          decimal.Zero,
		ContributionCount: len(contributions),
		ExpenseCount:      len(expenses),
	}

	for _, c := range contributions {
		switch c.Status {
		case ContributionStatusConfirmed:
			stats.Confirmed = stats.Confirmed.Add(c.Amount)
		case ContributionStatusPledged:
			stats.Pledged = stats.Pledged.Add(c.Amount)
		}
	}
	for _, e := range expenses {
		stats.Expenses = stats.Expenses.Add(e.Amount)
	}

	stats.Balance = stats.Confirmed.Sub(stats.Expenses)
	stats.Shortfall = decimal.Max(decimal.Zero, goal.Sub(stats.Confirmed))
	if goal.IsPositive() {
		stats.Percent = stats.Confirmed.Div(goal).Mul(hundred).Round(0).IntPart()
	}
	return stats
}

// ClampedPercent returns Percent limited to [0, 100] for progress bars
func (s CampaignStats) ClampedPercent() int64 {
	switch {
	case s.Percent < 0:
		return 0
	case s.Percent > 100:
		return 100
	}
	return s.Percent
}

// GroupStatsByCampaign computes stats for many campaigns at once from the
// flat contribution and expense lists of a club.
func GroupStatsByCampaign(campaigns []Campaign, contributions []Contribution, expenses []Expense) map[uuid.UUID]CampaignStats {
	contribByCampaign := make(map[uuid.UUID][]Contribution, len(campaigns))
	for _, c := range contributions {
		if c.CampaignID != nil {
			contribByCampaign[*c.CampaignID] = append(contribByCampaign[*c.CampaignID], c)
		}
	}
	expenseByCampaign := make(map[uuid.UUID][]Expense, len(campaigns))
	for _, e := range expenses {
		if e.CampaignID != nil {
			expenseByCampaign[*e.CampaignID] = append(expenseByCampaign[*e.CampaignID], e)
		}
	}

	result := make(map[uuid.UUID]CampaignStats, len(campaigns))
	for _, camp := range campaigns {
		result[camp.ID] = ComputeCampaignStats(camp.Goal, contribByCampaign[camp.ID], expenseByCampaign[camp.ID])
	}
	return result
}
