package model

// Outcome is a human-friendly label for a result.
// Keep these values stable; they are shown in API responses and CLI tables.
type Outcome string

const (
	OutcomeProfit    Outcome = "PROFIT"
	OutcomeBreakEven Outcome = "BREAKEVEN"
	OutcomeLoss      Outcome = "LOSS"
)

func OutcomeFromProfit(profit float64) Outcome {
	switch {
	case profit > 0:
		return OutcomeProfit
	case profit < 0:
		return OutcomeLoss
	default:
		return OutcomeBreakEven
	}
}
