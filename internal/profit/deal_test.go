// internal/profit/deal_test.go
package profit

import (
	"testing"

	"dealer-finance-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeProfit_ZeroCostPriceFlagged(t *testing.T) {
	deal := models.DealRecord{
		SoldPrice: 350000,
		CostPrice: 0,
		ReconCost: 10000,
		DICAmount: 5000,
	}

	summary := ComputeProfit(deal)

	assert.Equal(t, 355000.0, summary.GrossIncome)
	assert.Equal(t, 10000.0, summary.TotalCosts)
	assert.Equal(t, 345000.0, summary.GrossProfit)
	assert.Contains(t, summary.Advisories, AdvisoryZeroCostPrice)
}

func TestComputeProfit_FullDecomposition(t *testing.T) {
	deal := models.DealRecord{
		SoldPrice:                 420000,
		DiscountAmount:            20000,
		CostPrice:                 310000,
		ReconCost:                 15000,
		DICAmount:                 8000,
		DealerDepositContribution: 5000,
		ReferralIncomeAmount:      2000,
		ReferralCommissionAmount:  3000,
		SalesRepCommission:        9000,
		AddOns: []models.AddOn{
			{Name: "Tracker", CostPrice: 1500, SellingPrice: 4000},
			{Name: "Smash and grab", CostPrice: 1000, SellingPrice: 2500},
		},
		AftersalesExpenses: []models.AftersalesExpense{
			{Type: "warranty", Amount: 4000},
			{Type: "goodwill", Amount: 1500},
		},
	}

	summary := ComputeProfit(deal)

	// income: (420000-20000) + 6500 + 8000 + 2000 = 416500
	assert.Equal(t, 416500.0, summary.GrossIncome)
	// costs: 310000 + 15000 + 5000 + 2500 + 3000 = 335500
	assert.Equal(t, 335500.0, summary.TotalCosts)
	assert.Equal(t, 81000.0, summary.GrossProfit)
	assert.Equal(t, 5500.0, summary.AftersalesTotal)
	assert.Equal(t, 75500.0, summary.CurrentProfit)
	assert.Equal(t, 72000.0, summary.NetProfit)
	assert.Contains(t, summary.Advisories, AdvisoryDealerDepositInCosts)
	assert.NotContains(t, summary.Advisories, AdvisoryZeroCostPrice)
}

func TestComputeProfit_NoAdvisoriesOnCleanDeal(t *testing.T) {
	summary := ComputeProfit(models.DealRecord{
		SoldPrice: 200000,
		CostPrice: 170000,
	})

	assert.Empty(t, summary.Advisories)
	assert.Equal(t, 30000.0, summary.GrossProfit)
	assert.Equal(t, summary.GrossProfit, summary.CurrentProfit)
}

func TestComputeProfit_Idempotent(t *testing.T) {
	deal := models.DealRecord{SoldPrice: 300000, CostPrice: 250000, ReconCost: 8000}
	first := ComputeProfit(deal)
	second := ComputeProfit(deal)
	assert.Equal(t, first, second)
}
