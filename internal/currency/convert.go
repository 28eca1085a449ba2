package currency

import "github.com/shopspring/decimal"

// RateTable maps normalized currency codes to rate-to-base factors.
type RateTable map[string]decimal.Decimal

func BuildRateTable(currencies []*Currency) RateTable {
	table := make(RateTable, len(currencies))
	for _, c := range currencies {
		table[NormalizeCode(c.Code)] = c.RateToBase
	}
	return table
}

// resolveRate looks up a code's rate-to-base. The base currency is
// always 1, regardless of any stale row in the table. A missing code
// also resolves to 1: conversion fails open so analytics reads degrade
// to face-value totals instead of aborting.
func resolveRate(code, baseCode string, rates RateTable) decimal.Decimal {
	code = NormalizeCode(code)
	if code == NormalizeCode(baseCode) {
		return decimal.NewFromInt(1)
	}
	if rate, ok := rates[code]; ok && rate.IsPositive() {
		return rate
	}
	return decimal.NewFromInt(1)
}

// RateOf exposes the resolved rate-to-base for aggregation layers that
// accumulate exact decimals before rounding once per bucket.
func RateOf(code string, rates RateTable, baseCode string) decimal.Decimal {
	return resolveRate(code, baseCode, rates)
}

// ToBase converts minor units of sourceCode into base-currency minor
// units, rounding half up to the nearest integer.
func ToBase(amountMinor int64, sourceCode string, rates RateTable, baseCode string) int64 {
	if NormalizeCode(sourceCode) == NormalizeCode(baseCode) {
		return amountMinor
	}
	rate := resolveRate(sourceCode, baseCode, rates)
	return decimal.NewFromInt(amountMinor).Mul(rate).Round(0).IntPart()
}

// Between converts between two arbitrary currencies by composing
// rate(from)/rate(to) directly, never routing through a third
// currency. Equal resolved rates return the amount unchanged to avoid
// introducing rounding noise.
func Between(amountMinor int64, fromCode, toCode string, rates RateTable, baseCode string) int64 {
	if NormalizeCode(fromCode) == NormalizeCode(toCode) {
		return amountMinor
	}
	from := resolveRate(fromCode, baseCode, rates)
	to := resolveRate(toCode, baseCode, rates)
	if from.Equal(to) {
		return amountMinor
	}
	return decimal.NewFromInt(amountMinor).Mul(from).DivRound(to, 0).IntPart()
}
