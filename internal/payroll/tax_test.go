package payroll

import (
	"errors"
	"testing"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(i int) *int { return &i }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestCompute_DailyTopBracketBoundary(t *testing.T) {
	// 10,000 x 20 days = 200,000/month = 2,400,000/year, exactly the last threshold.
	a, err := Compute(Contract{Type: model.ContractDaily, PayRate: dec("10000"), DaysWorked: intPtr(20)})
	require.NoError(t, err)

	assertDec(t, "200000", a.Gross)
	assertDec(t, "11000", SocialContribution(a.Gross))
	// 600k*0.15 + 600k*0.25 + 600k*0.35 = 450,000 / 12
	assertDec(t, "37500", MonthlyIncomeTax(a.Gross))
	assertDec(t, "48500", a.Deductions)
	assertDec(t, "151500", a.Net)
}

func TestCompute_FixedAboveTopBracket(t *testing.T) {
	a, err := Compute(Contract{Type: model.ContractFixed, PayRate: dec("300000")})
	require.NoError(t, err)

	// annual 3.6M: 1.2M*0.40 + 450k = 930k -> 77,500/month; social 16,500
	assertDec(t, "300000", a.Gross)
	assertDec(t, "94000", a.Deductions)
	assertDec(t, "206000", a.Net)
}

func TestCompute_FixedBelowFirstBracket(t *testing.T) {
	a, err := Compute(Contract{Type: model.ContractFixed, PayRate: dec("50000")})
	require.NoError(t, err)

	// annual 600k is not above the first threshold: social only
	assertDec(t, "2750", a.Deductions)
	assertDec(t, "47250", a.Net)
}

func TestCompute_FixedProratedRounding(t *testing.T) {
	a, err := Compute(Contract{Type: model.ContractFixed, PayRate: dec("55555")})
	require.NoError(t, err)

	// annual 666,660 -> tax 9,999 -> 833.25/month; social 3,055.525 -> 3,055.53
	assertDec(t, "3888.78", a.Deductions)
	assertDec(t, "51666.22", a.Net)
}

func TestCompute_Honorarium(t *testing.T) {
	a, err := Compute(Contract{Type: model.ContractHonorarium, PayRate: dec("150000")})
	require.NoError(t, err)

	assertDec(t, "150000", a.Gross)
	assertDec(t, "15000", a.Deductions)
	assertDec(t, "135000", a.Net)
}

func TestCompute_DailyWithoutDays(t *testing.T) {
	a, err := Compute(Contract{Type: model.ContractDaily, PayRate: dec("10000")})
	require.NoError(t, err)

	assert.True(t, a.Gross.IsZero())
	assert.True(t, a.Deductions.IsZero())
	assert.True(t, a.Net.IsZero())
}

func TestCompute_UnknownContract(t *testing.T) {
	_, err := Compute(Contract{Type: "INTERN", PayRate: dec("1")})
	assert.True(t, errors.Is(err, apperr.ErrInvalidContract))
}

func TestCompute_Deterministic(t *testing.T) {
	c := Contract{Type: model.ContractFixed, PayRate: dec("187654.32")}
	first, err := Compute(c)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := Compute(c)
		require.NoError(t, err)
		assert.Equal(t, first.Gross.String(), again.Gross.String())
		assert.Equal(t, first.Deductions.String(), again.Deductions.String())
		assert.Equal(t, first.Net.String(), again.Net.String())
	}
}

func TestAnnualIncomeTax_Brackets(t *testing.T) {
	cases := []struct {
		annual string
		tax    string
	}{
		{"0", "0"},
		{"600000", "0"},
		{"1200000", "90000"},
		{"1500000", "165000"},
		{"1800000", "240000"},
		{"2400000", "450000"},
		{"3000000", "690000"},
	}
	for _, tc := range cases {
		assertDec(t, tc.tax, AnnualIncomeTax(dec(tc.annual)))
	}
}
