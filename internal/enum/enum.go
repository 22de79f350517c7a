package enum

// ── Group A: Intake scoring (returned by the parser, never stored) ──

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
	ConfidenceNone   = "none"
)

const (
	MatchedOnName        = "name"
	MatchedOnDescription = "description"
	MatchedOnTag         = "tag"
)

// ── Group B: Order lifecycle (owned by the order store) ──

const (
	OrderStatusReserved  = "reserved"
	OrderStatusUnpaid    = "unpaid"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// ── Group C: Review feed event types ──

const (
	EventOrderParsed    = "order.parsed"
	EventOrderConfirmed = "order.confirmed"
)

// ConfidenceRank orders confidence levels so callers can compare them.
// Unknown values rank below "none".
func ConfidenceRank(c string) int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	case ConfidenceNone:
		return 0
	}
	return -1
}
