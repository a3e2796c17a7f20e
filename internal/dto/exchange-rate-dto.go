package dto

type ExchangeRateDTO struct {
	CurrencyCode    string  `json:"currency_code"`
	BanknoteSelling float64 `json:"banknote_selling"`
	FetchedAt       string  `json:"fetched_at"`
}
