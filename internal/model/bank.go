package model

import (
	"fmt"
	"strings"
)

// Bank identifies the institution a statement was exported from.
type Bank string

const (
	BankMonzo   Bank = "Monzo"
	BankRevolut Bank = "Revolut"
	BankWise    Bank = "Wise"
	BankAmex    Bank = "Amex"
)

// Banks returns every supported bank in processing order.
func Banks() []Bank {
	return []Bank{BankMonzo, BankRevolut, BankWise, BankAmex}
}

// ParseBank resolves a bank name case-insensitively.
func ParseBank(s string) (Bank, error) {
	for _, b := range Banks() {
		if strings.EqualFold(string(b), strings.TrimSpace(s)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bank %q", s)
}
