package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createTestMember(t *testing.T, clubID uuid.UUID, name string) *Member {
	t.Helper()
	m, err := NewMember(clubID, name, "", "", decimal.Zero)
	require.NoError(t, err)
	return m
}

func createTestCampaign(t *testing.T, clubID uuid.UUID, goal string) *Campaign {
	t.Helper()
	c, err := NewCampaign(clubID, "Camisetas", "", dec(goal), nil)
	require.NoError(t, err)
	return c
}
