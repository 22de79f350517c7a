package handler

import (
	"fmt"
	"strings"

	"github.com/kiwari-pos/orderdesk/internal/enum"
	"github.com/kiwari-pos/orderdesk/internal/intake/matcher"
	"github.com/kiwari-pos/orderdesk/internal/intake/parser"
	"github.com/shopspring/decimal"
)

// buildSummary renders a parse as plain text for the person at the counter.
// Lines are grouped by how much checking they need.
func buildSummary(order parser.ParsedOrder) string {
	var sb strings.Builder

	sb.WriteString(customerLine(order.Customer))
	sb.WriteString("\n\n")

	if len(order.Items) == 0 {
		sb.WriteString("No order lines found.")
		return sb.String()
	}

	var matched, review, unresolved []parser.LineItem
	for _, item := range order.Items {
		switch item.Confidence {
		case enum.ConfidenceHigh, enum.ConfidenceMedium:
			matched = append(matched, item)
		case enum.ConfidenceLow:
			review = append(review, item)
		default:
			unresolved = append(unresolved, item)
		}
	}

	// Matched section
	if len(matched) > 0 {
		sb.WriteString("✔️ Matched:\n")
		for _, m := range matched {
			sel := m.SelectedMatch
			fmt.Fprintf(&sb, "• %d x %s = %s\n", m.Quantity, sel.Item.Name, lineTotal(m).StringFixed(2))
		}
		sb.WriteString("\n")
	}

	// Needs-review section
	if len(review) > 0 {
		sb.WriteString("⚠️ Needs review:\n")
		for _, a := range review {
			sel := a.SelectedMatch
			fmt.Fprintf(&sb, "• %d x %s? from %q = %s\n", a.Quantity, sel.Item.Name, a.RawLine, lineTotal(a).StringFixed(2))
			fmt.Fprintf(&sb, "  Maybe: %s\n", candidateNames(a.Candidates))
		}
		sb.WriteString("\n")
	}

	// Unresolved section
	if len(unresolved) > 0 {
		sb.WriteString("❌ Not on the menu:\n")
		for _, u := range unresolved {
			fmt.Fprintf(&sb, "• %q (qty %d)\n", u.RawLine, u.Quantity)
		}
		sb.WriteString("\n")
	}

	priced := len(matched) + len(review)
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(lineTotal(item))
	}
	fmt.Fprintf(&sb, "Estimated total: %d of %d lines = %s", priced, len(order.Items), total.StringFixed(2))

	return sb.String()
}

func customerLine(c parser.CustomerInfo) string {
	parts := make([]string, 0, 5)
	if c.Name != "" {
		parts = append(parts, c.Name)
	} else {
		parts = append(parts, "Unknown customer")
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	if c.UnitNumber != "" {
		parts = append(parts, "Unit "+c.UnitNumber)
	}
	if c.Building != "" {
		parts = append(parts, "Bldg "+c.Building)
	}
	if c.Floor != "" {
		parts = append(parts, "Floor "+c.Floor)
	}
	return "Customer: " + strings.Join(parts, ", ")
}

// lineTotal is zero for lines without a selected match.
func lineTotal(item parser.LineItem) decimal.Decimal {
	if item.SelectedMatch == nil {
		return decimal.Zero
	}
	return item.SelectedMatch.Item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func candidateNames(candidates []matcher.Candidate) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Item.Name
	}
	return strings.Join(names, ", ")
}
