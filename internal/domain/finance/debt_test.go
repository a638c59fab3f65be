package finance

import (
	"testing"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDebt(t *testing.T, original string) *Debt {
	t.Helper()
	clubID := uuid.New()
	member := createTestMember(t, clubID, "Juan Pérez")
	d, err := NewDebt(clubID, member, "Cuota anual", dec(original), "")
	require.NoError(t, err)
	return d
}

func assertLedgerInvariant(t *testing.T, d *Debt) {
	t.Helper()
	assert.True(t, d.PaidAmount.Add(d.RemainingAmount).Equal(d.OriginalAmount),
		"paid %s + remaining %s != original %s", d.PaidAmount, d.RemainingAmount, d.OriginalAmount)
	assert.False(t, d.RemainingAmount.IsNegative())
	assert.Equal(t, DeriveDebtStatus(d.PaidAmount, d.RemainingAmount), d.Status)
}

func TestDebtStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  DebtStatus
		isValid bool
	}{
		{DebtStatusPending, true},
		{DebtStatusPartial, true},
		{DebtStatusPaid, true},
		{DebtStatus("cancelada"), false},
		{DebtStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestDeriveDebtStatus(t *testing.T) {
	assert.Equal(t, DebtStatusPending, DeriveDebtStatus(decimal.Zero, dec("300")))
	assert.Equal(t, DebtStatusPartial, DeriveDebtStatus(dec("100"), dec("200")))
	assert.Equal(t, DebtStatusPaid, DeriveDebtStatus(dec("300"), decimal.Zero))
}

func TestNewDebt(t *testing.T) {
	clubID := uuid.New()
	member := createTestMember(t, clubID, "Juan")

	d, err := NewDebt(clubID, member, " Cuota ", dec("300"), "nota")
	require.NoError(t, err)
	assert.Equal(t, DebtStatusPending, d.Status)
	assert.True(t, d.PaidAmount.IsZero())
	assert.True(t, d.RemainingAmount.Equal(dec("300")))
	assert.Equal(t, "Juan", d.MemberName)
	assert.Equal(t, "Cuota", d.Concept)
	assertLedgerInvariant(t, d)

	_, err = NewDebt(clubID, member, "Cuota", decimal.Zero, "")
	assert.ErrorIs(t, err, shared.NewDomainError("INVALID_AMOUNT", ""))

	other := createTestMember(t, uuid.New(), "Ajeno")
	_, err = NewDebt(clubID, other, "Cuota", dec("10"), "")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = NewDebt(clubID, nil, "Cuota", dec("10"), "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDebt_ApplyPayment_Scenario(t *testing.T) {
	d := createTestDebt(t, "300")

	p1, err := d.ApplyPayment(dec("100"), "primer pago")
	require.NoError(t, err)
	assert.True(t, p1.Amount.Equal(dec("100")))
	assert.Equal(t, d.ID, p1.DebtID)
	assert.Equal(t, d.ClubID, p1.ClubID)
	assert.True(t, d.PaidAmount.Equal(dec("100")))
	assert.True(t, d.RemainingAmount.Equal(dec("200")))
	assert.Equal(t, DebtStatusPartial, d.Status)
	assertLedgerInvariant(t, d)

	_, err = d.ApplyPayment(dec("200"), "")
	require.NoError(t, err)
	assert.True(t, d.RemainingAmount.IsZero())
	assert.Equal(t, DebtStatusPaid, d.Status)
	assert.True(t, d.IsSettled())
	assertLedgerInvariant(t, d)

	_, err = d.ApplyPayment(dec("1"), "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_REMAINING", domainErr.Code)
	assert.True(t, d.PaidAmount.Equal(dec("300")))
}

func TestDebt_ApplyPayment_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
	}{
		{"zero", "0", "INVALID_AMOUNT"},
		{"negative", "-5", "INVALID_AMOUNT"},
		{"rounds to zero", "0.001", "INVALID_AMOUNT"},
		{"just below half a cent", "0.0049", "INVALID_AMOUNT"},
		{"exceeds", "300.01", "EXCEEDS_REMAINING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := createTestDebt(t, "300")
			version := d.Version
			_, err := d.ApplyPayment(dec(tt.amount), "")
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Equal(t, version, d.Version)
			assertLedgerInvariant(t, d)
		})
	}
}

func TestDebt_RejectionMessagesAreSpanish(t *testing.T) {
	d := createTestDebt(t, "300")

	_, err := d.ApplyPayment(dec("0.001"), "")
	require.Error(t, err)
	assert.Equal(t, "El monto del pago debe ser mayor que cero", err.Error())

	_, err = d.ApplyPayment(dec("300.01"), "")
	require.Error(t, err)
	assert.Equal(t, "El monto del pago 300.01 supera el saldo restante 300.00", err.Error())

	err = d.UpdateDetails("  ", dec("300"), "")
	require.Error(t, err)
	assert.Equal(t, "El concepto es obligatorio", err.Error())
}

func TestDebt_ApplyPayment_RoundsToCents(t *testing.T) {
	d := createTestDebt(t, "300")
	p, err := d.ApplyPayment(dec("0.005"), "")
	require.NoError(t, err)
	assert.Equal(t, "0.01", p.Amount.StringFixed(2))
	assert.True(t, p.Amount.Equal(d.PaidAmount))
	assertLedgerInvariant(t, d)
}

func TestDebt_ApplyPayment_ManySmallPaymentsKeepExactBalance(t *testing.T) {
	d := createTestDebt(t, "1")
	for i := 0; i < 10; i++ {
		_, err := d.ApplyPayment(dec("0.1"), "")
		require.NoError(t, err)
		assertLedgerInvariant(t, d)
	}
	assert.True(t, d.RemainingAmount.IsZero())
	assert.Equal(t, DebtStatusPaid, d.Status)
}

func TestDebt_UpdateDetails(t *testing.T) {
	d := createTestDebt(t, "300")
	_, err := d.ApplyPayment(dec("100"), "")
	require.NoError(t, err)

	require.NoError(t, d.UpdateDetails("Cuota 2025", dec("100"), ""))
	assert.Equal(t, DebtStatusPaid, d.Status)
	assertLedgerInvariant(t, d)

	require.NoError(t, d.UpdateDetails("Cuota 2025", dec("500"), "ajuste"))
	assert.Equal(t, DebtStatusPartial, d.Status)
	assert.True(t, d.RemainingAmount.Equal(dec("400")))
	assertLedgerInvariant(t, d)

	err = d.UpdateDetails("Cuota 2025", dec("50"), "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	assert.True(t, d.OriginalAmount.Equal(dec("500")))

	fresh := createTestDebt(t, "300")
	require.NoError(t, fresh.UpdateDetails("Cuota", dec("250"), ""))
	assert.Equal(t, DebtStatusPending, fresh.Status)
	assertLedgerInvariant(t, fresh)
}
