package analysis

// Transaction is a single buy/sell pair from the unlimited-transactions
// profit strategy. The sell always happens the day after the buy.
type Transaction struct {
	BuyDay    int     `json:"buy_day"`
	SellDay   int     `json:"sell_day"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Profit    float64 `json:"profit"`
}

// MaxProfit computes the maximum profit extractable with unlimited buy/sell
// transactions: buy before every price increase and sell after it. Summing
// every positive day-over-day delta is optimal because any multi-day hold
// decomposes into its daily up-deltas.
func MaxProfit(prices []float64) (float64, []Transaction) {
	transactions := []Transaction{}
	if len(prices) < 2 {
		return 0, transactions
	}
	total := 0.0
	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			continue
		}
		profit := prices[i] - prices[i-1]
		total += profit
		transactions = append(transactions, Transaction{
			BuyDay:    i - 1,
			SellDay:   i,
			BuyPrice:  prices[i-1],
			SellPrice: prices[i],
			Profit:    profit,
		})
	}
	return total, transactions
}
