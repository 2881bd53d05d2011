package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name           string
		grossCents     int64
		commissionBps  int64
		feeBps         int64
		wantCommission int64
		wantFee        int64
		wantPayout     int64
		wantTotal      int64
		wantErr        error
	}{
		{
			name:           "350 dollars at 10 percent commission and 2.9 percent fee",
			grossCents:     35000,
			commissionBps:  1000,
			feeBps:         290,
			wantCommission: 3500,
			wantFee:        1015,
			wantPayout:     31500,
			wantTotal:      36015,
		},
		{
			name:           "250 dollars at 10 percent commission",
			grossCents:     25000,
			commissionBps:  1000,
			feeBps:         290,
			wantCommission: 2500,
			wantFee:        725,
			wantPayout:     22500,
			wantTotal:      25725,
		},
		{
			name:           "odd gross rounds commission half up",
			grossCents:     33333,
			commissionBps:  1000,
			feeBps:         290,
			wantCommission: 3333, // 3333.3 rounds down
			wantFee:        967,  // 966.657 rounds up
			wantPayout:     30000,
			wantTotal:      34300,
		},
		{
			name:          "zero gross is rejected",
			grossCents:    0,
			commissionBps: 1000,
			feeBps:        290,
			wantErr:       ErrInvalidAmount,
		},
		{
			name:          "negative gross is rejected",
			grossCents:    -100,
			commissionBps: 1000,
			feeBps:        290,
			wantErr:       ErrInvalidAmount,
		},
		{
			name:           "zero rates leave gross untouched",
			grossCents:     10000,
			commissionBps:  0,
			feeBps:         0,
			wantCommission: 0,
			wantFee:        0,
			wantPayout:     10000,
			wantTotal:      10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSettlement(tt.grossCents, tt.commissionBps, tt.feeBps)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCommission, got.CommissionCents)
			assert.Equal(t, tt.wantFee, got.ProcessingFeeCents)
			assert.Equal(t, tt.wantPayout, got.PayoutCents)
			assert.Equal(t, tt.wantTotal, got.TotalChargedCents)
		})
	}
}

// payment == commission + payout must hold exactly for any gross amount and
// commission rate, since the payout is defined as the remainder.
func TestComputeSettlement_BalanceInvariant(t *testing.T) {
	grosses := []int64{1, 99, 101, 25000, 33333, 35000, 999999, 1000001}
	rates := []int64{0, 1, 250, 333, 1000, 1500, 9999}

	for _, gross := range grosses {
		for _, rate := range rates {
			s, err := ComputeSettlement(gross, rate, 290)
			require.NoError(t, err)
			assert.Equal(t, s.GrossCents, s.CommissionCents+s.PayoutCents,
				"balance broken for gross=%d rate=%d", gross, rate)
		}
	}
}
