package core

import "github.com/shopspring/decimal"

// Domain is the padded display range for the chart's value axis, in
// major units.
type Domain struct {
	Min decimal.Decimal
	Max decimal.Decimal
	// Degenerate marks a flat or empty series, where padding collapses
	// to zero width. The renderer substitutes its own minimum padding;
	// the scaler does not invent one.
	Degenerate bool
}

var axisPadding = decimal.NewFromFloat(0.1)

// Scale derives the display domain from a balance series: the raw
// min/max padded outward by 10% of the range.
func Scale(values []Money) Domain {
	if len(values) == 0 {
		return Domain{Degenerate: true}
	}

	min, max := values[0].Cents, values[0].Cents
	for _, v := range values[1:] {
		if v.Cents < min {
			min = v.Cents
		}
		if v.Cents > max {
			max = v.Cents
		}
	}

	lo := decimal.New(min, -2)
	hi := decimal.New(max, -2)
	if min == max {
		return Domain{Min: lo, Max: hi, Degenerate: true}
	}

	pad := hi.Sub(lo).Mul(axisPadding)
	return Domain{Min: lo.Sub(pad), Max: hi.Add(pad)}
}
