package view

// ReferenceSymbol is an entry of the S&P 500 quick reference list.
type ReferenceSymbol struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SP500Reference is a sample of large S&P 500 constituents offered as
// search shortcuts.
var SP500Reference = []ReferenceSymbol{
	{"AAPL", "Apple Inc."},
	{"MSFT", "Microsoft Corp."},
	{"NVDA", "NVIDIA Corp."},
	{"AMZN", "Amazon.com"},
	{"META", "Meta Platforms"},
	{"GOOGL", "Alphabet Inc."},
	{"TSLA", "Tesla Inc."},
	{"BRK.B", "Berkshire Hathaway"},
	{"LLY", "Eli Lilly"},
	{"AVGO", "Broadcom"},
	{"JPM", "JPMorgan Chase"},
	{"V", "Visa Inc."},
	{"XOM", "Exxon Mobil"},
	{"UNH", "UnitedHealth"},
	{"MA", "Mastercard"},
	{"PG", "Procter & Gamble"},
	{"JNJ", "Johnson & Johnson"},
	{"HD", "Home Depot"},
	{"COST", "Costco"},
	{"ABBV", "AbbVie"},
	{"AMD", "Adv. Micro Devices"},
	{"NFLX", "Netflix"},
	{"KO", "Coca-Cola"},
	{"PEP", "PepsiCo"},
	{"DIS", "Walt Disney"},
	{"CSCO", "Cisco Systems"},
	{"INTC", "Intel Corp."},
	{"VZ", "Verizon"},
	{"PFE", "Pfizer"},
	{"WMT", "Walmart"},
}
