package currency

import (
	"database/sql/driver"
	"errors"
)

type Currency string

const (
	CurrencyCHF Currency = "CHF"
	CurrencyEUR Currency = "EUR"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyCHF.String():
		return CurrencyCHF, nil
	case CurrencyEUR.String():
		return CurrencyEUR, nil
	default:
		return "", ErrInvalidCurrency
	}
}
