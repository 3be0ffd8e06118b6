package domain

import (
	"encoding/json"
	"fmt"
)

// CurrencyType is one of the closed set of currencies the price index reports.
// The zero value means the currency is absent.
type CurrencyType string

const (
	USD CurrencyType = "USD"
	GBP CurrencyType = "GBP"
	EUR CurrencyType = "EUR"
)

type currencyNames struct {
	chinese string
	english string
}

var currencyCatalog = map[CurrencyType]currencyNames{
	USD: {chinese: "美元", english: "United States Dollar"},
	GBP: {chinese: "英鎊", english: "British Pound Sterling"},
	EUR: {chinese: "歐元", english: "Euro"},
}

// SupportedCurrencies returns the catalog in fetch order.
func SupportedCurrencies() []CurrencyType {
	return []CurrencyType{USD, GBP, EUR}
}

// LookupCurrency matches code exactly (case-sensitive) against the catalog.
func LookupCurrency(code string) (CurrencyType, error) {
	c := CurrencyType(code)
	if _, ok := currencyCatalog[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedCurrency, code)
	}
	return c, nil
}

func (c CurrencyType) Code() string { return string(c) }

func (c CurrencyType) ChineseName() string { return currencyCatalog[c].chinese }

func (c CurrencyType) EnglishName() string { return currencyCatalog[c].english }

func (c CurrencyType) IsZero() bool { return c == "" }

func (c CurrencyType) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

func (c *CurrencyType) UnmarshalJSON(data []byte) error {
	var code *string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	if code == nil || *code == "" {
		*c = ""
		return nil
	}
	parsed, err := LookupCurrency(*code)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
