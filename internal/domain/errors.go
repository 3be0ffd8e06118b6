package domain

import "errors"

var (
	ErrPriceNotFound        = errors.New("price not found")
	ErrUpstreamFetch        = errors.New("failed to fetch data from price index api")
	ErrUnrecognizedCurrency = errors.New("unrecognized currency")
)
