package analysis

import (
	"math"
	"testing"
)

func TestMaxProfitFixture(t *testing.T) {
	total, transactions := MaxProfit(fixtureCloses)

	if math.Abs(total-12.0) > 1e-9 {
		t.Errorf("Expected total profit 12.0, got %f", total)
	}
	if len(transactions) != 6 {
		t.Fatalf("Expected 6 transactions, got %d", len(transactions))
	}
	first := transactions[0]
	if first.BuyDay != 0 || first.SellDay != 1 || first.Profit != 2.0 {
		t.Errorf("Unexpected first transaction: %+v", first)
	}
	for _, tx := range transactions {
		if tx.SellDay != tx.BuyDay+1 {
			t.Errorf("Sell day must follow buy day: %+v", tx)
		}
		if tx.Profit <= 0 {
			t.Errorf("Transaction must be profitable: %+v", tx)
		}
		if math.Abs(tx.Profit-(tx.SellPrice-tx.BuyPrice)) > 1e-9 {
			t.Errorf("Profit must equal price delta: %+v", tx)
		}
	}
}

func TestMaxProfitMonotonicIncrease(t *testing.T) {
	prices := []float64{10, 12, 15, 19, 25}
	total, transactions := MaxProfit(prices)

	want := prices[len(prices)-1] - prices[0]
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("Expected profit %f, got %f", want, total)
	}
	if len(transactions) != len(prices)-1 {
		t.Errorf("Expected %d transactions, got %d", len(prices)-1, len(transactions))
	}
}

func TestMaxProfitDecreasing(t *testing.T) {
	total, transactions := MaxProfit([]float64{50, 40, 30, 20, 10})
	if total != 0 {
		t.Errorf("Expected zero profit, got %f", total)
	}
	if len(transactions) != 0 {
		t.Errorf("Expected no transactions, got %d", len(transactions))
	}
}

func TestMaxProfitShortSeries(t *testing.T) {
	for _, prices := range [][]float64{nil, {}, {42}} {
		total, transactions := MaxProfit(prices)
		if total != 0 || len(transactions) != 0 {
			t.Errorf("Prices %v: expected (0, empty), got (%f, %d)", prices, total, len(transactions))
		}
	}
}

func TestMaxProfitEqualsPositiveDeltaSum(t *testing.T) {
	prices := []float64{3, 7, 2, 8, 8, 1, 9, 4}
	total, _ := MaxProfit(prices)

	sum := 0.0
	for i := 1; i < len(prices); i++ {
		if d := prices[i] - prices[i-1]; d > 0 {
			sum += d
		}
	}
	if math.Abs(total-sum) > 1e-9 {
		t.Errorf("Expected profit %f to equal positive delta sum %f", total, sum)
	}
}
