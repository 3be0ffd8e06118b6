package domain

import "time"

// Price is one persisted currency rate snapshot. Every field except ID may be
// empty when the record was written directly through the CRUD surface.
type Price struct {
	ID           int64        `json:"id" example:"1"`
	Updated      string       `json:"updated" example:"Sep 2, 2024 07:07:20 UTC"`
	UpdatedISO   string       `json:"updatedISO" example:"2024-09-02T07:07:20+00:00"`
	UpdatedUK    string       `json:"updateduk" example:"Sep 2, 2024 at 08:07 BST"`
	Disclaimer   string       `json:"disclaimer" example:"just for test"`
	ChartName    string       `json:"chartName" example:"Bitcoin"`
	CreatedAt    *time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt"`
	CurrencyType CurrencyType `json:"currencyType" swaggertype:"string" enums:"USD,GBP,EUR"`
	Rate         string       `json:"rate" example:"57,756.298"`
	RateFloat    *float64     `json:"rateFloat" example:"57756.2984"`
	CurrencyName string       `json:"currencyName" example:"United States Dollar"`
	ChineseName  string       `json:"chineseName" example:"美元"`
}

// PriceIndex is the price index API response. It only lives for the duration
// of a fetch.
type PriceIndex struct {
	Time       *PriceIndexTime               `json:"time"`
	Disclaimer string                        `json:"disclaimer"`
	ChartName  string                        `json:"chartName"`
	Bpi        map[string]PriceIndexCurrency `json:"bpi"`
}

type PriceIndexTime struct {
	Updated    string `json:"updated"`
	UpdatedISO string `json:"updatedISO"`
	UpdatedUK  string `json:"updateduk"`
}

type PriceIndexCurrency struct {
	Code        string   `json:"code"`
	Symbol      string   `json:"symbol"`
	Rate        string   `json:"rate"`
	Description string   `json:"description"`
	RateFloat   *float64 `json:"rate_float"`
}
