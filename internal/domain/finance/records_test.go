package finance

import (
	"testing"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	clubID := uuid.New()
	m, err := NewMember(clubID, " Ana ", "ANA@mail.com", " 555 ", dec("10.005"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", m.Name)
	assert.Equal(t, "ana@mail.com", m.Email)
	assert.Equal(t, MemberStatusActive, m.Status)
	assert.True(t, m.DuesDebt.Equal(dec("10.01")))

	_, err = NewMember(clubID, "", "", "", decimal.Zero)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewMember(clubID, "Ana", "", "", dec("-1"))
	assert.Error(t, err)

	require.NoError(t, m.Update("Ana María", "", "", decimal.Zero, MemberStatusInactive))
	assert.Equal(t, MemberStatusInactive, m.Status)
	assert.Error(t, m.Update("Ana", "", "", decimal.Zero, MemberStatus("baja")))
}

func TestCampaign_Lifecycle(t *testing.T) {
	clubID := uuid.New()
	closeDate := time.Now().AddDate(0, 1, 0)
	c, err := NewCampaign(clubID, "Viaje", "Torneo", dec("1000"), &closeDate)
	require.NoError(t, err)
	assert.True(t, c.IsOpen())

	require.NoError(t, c.Update("Viaje", "Torneo", dec("1200"), nil, CampaignStatusCompleted))
	assert.False(t, c.IsOpen())
	assert.Nil(t, c.CloseDate)

	assert.Error(t, c.Update("Viaje", "", dec("1"), nil, CampaignStatus("abierta")))
	_, err = NewCampaign(clubID, "Viaje", "", dec("-1"), nil)
	assert.Error(t, err)
}

func TestContribution_SnapshotAndClubChecks(t *testing.T) {
	clubID := uuid.New()
	member := createTestMember(t, clubID, "Ana")
	campaign := createTestCampaign(t, clubID, "100")

	c, err := NewContribution(clubID, ContributionInput{Member: member, Campaign: campaign, Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, ContributionStatusConfirmed, c.Status)
	assert.Equal(t, "Ana", c.MemberName)
	assert.Equal(t, member.ID, *c.MemberID)
	assert.Equal(t, campaign.ID, *c.CampaignID)

	other := createTestMember(t, clubID, "Beto")
	require.NoError(t, c.Update(ContributionInput{Member: other, Amount: dec("15"), Status: ContributionStatusPledged}))
	assert.Equal(t, "Beto", c.MemberName)
	assert.Nil(t, c.CampaignID)
	assert.False(t, c.IsConfirmed())

	foreignMember := createTestMember(t, uuid.New(), "Ajeno")
	_, err = NewContribution(clubID, ContributionInput{Member: foreignMember, Amount: dec("10")})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	foreignCampaign := createTestCampaign(t, uuid.New(), "10")
	_, err = NewContribution(clubID, ContributionInput{Member: member, Campaign: foreignCampaign, Amount: dec("10")})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = NewContribution(clubID, ContributionInput{Member: member, Amount: decimal.Zero})
	assert.Error(t, err)

	_, err = NewContribution(clubID, ContributionInput{Member: member, Amount: dec("1"), Status: "regalado"})
	assert.Error(t, err)
}

func TestExpense_Defaults(t *testing.T) {
	clubID := uuid.New()
	payer := createTestMember(t, clubID, "Ana")

	e, err := NewExpense(clubID, ExpenseInput{PaidBy: payer, Concept: "Arbitraje", Amount: dec("80")})
	require.NoError(t, err)
	assert.Equal(t, "general", e.Category)
	assert.Equal(t, "Ana", e.PaidByName)
	assert.False(t, e.Date.IsZero())

	date := e.Date
	require.NoError(t, e.Update(ExpenseInput{PaidBy: payer, Concept: "Arbitraje x2", Amount: dec("160"), Category: "arbitros"}))
	assert.Equal(t, date, e.Date)
	assert.Equal(t, "arbitros", e.Category)

	_, err = NewExpense(clubID, ExpenseInput{Concept: "Sin pagador", Amount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewExpense(clubID, ExpenseInput{PaidBy: payer, Concept: " ", Amount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestIncome_OptionalMember(t *testing.T) {
	clubID := uuid.New()

	i, err := NewIncome(clubID, IncomeInput{Concept: "Rifa", Amount: dec("500")})
	require.NoError(t, err)
	assert.Nil(t, i.MemberID)
	assert.Equal(t, "otro", i.Source)

	member := createTestMember(t, clubID, "Ana")
	require.NoError(t, i.Update(IncomeInput{Member: member, Concept: "Rifa", Amount: dec("600"), Source: "rifa"}))
	assert.Equal(t, "Ana", i.MemberName)
	assert.Equal(t, "rifa", i.Source)

	foreign := createTestMember(t, uuid.New(), "Ajeno")
	_, err = NewIncome(clubID, IncomeInput{Member: foreign, Concept: "Rifa", Amount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAmountsThatRoundToZeroAreRejected(t *testing.T) {
	clubID := uuid.New()
	member := createTestMember(t, clubID, "Ana")
	tiny := dec("0.001")

	tests := []struct {
		name string
		run  func() error
	}{
		{"contribution", func() error {
			_, err := NewContribution(clubID, ContributionInput{Member: member, Amount: tiny})
			return err
		}},
		{"expense", func() error {
			_, err := NewExpense(clubID, ExpenseInput{PaidBy: member, Concept: "Pelotas", Amount: tiny})
			return err
		}},
		{"income", func() error {
			_, err := NewIncome(clubID, IncomeInput{Concept: "Rifa", Amount: tiny})
			return err
		}},
		{"debt", func() error {
			_, err := NewDebt(clubID, member, "Cuota", tiny, "")
			return err
		}},
		{"debt update", func() error {
			d, err := NewDebt(clubID, member, "Cuota", dec("10"), "")
			require.NoError(t, err)
			return d.UpdateDetails("Cuota", tiny, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *shared.DomainError
			require.ErrorAs(t, tt.run(), &domainErr)
			assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		})
	}
}
