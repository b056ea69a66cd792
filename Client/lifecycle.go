package Client

import (
	"fmt"
	"strings"
)

// Settlement lifecycle states, mirroring the server.
const (
	SettlementDraft      = "draft"
	SettlementCalculated = "calculated"
	SettlementApproved   = "approved"
	SettlementPaid       = "paid"
	SettlementCancelled  = "cancelled"
)

// CanTransition mirrors the server's lifecycle rules so a UI can enable and
// disable actions without a round trip. The server remains the authority.
func CanTransition(from, to string) bool {
	switch to {
	case SettlementCalculated:
		return from == SettlementDraft || from == SettlementCalculated
	case SettlementApproved:
		return from == SettlementCalculated
	case SettlementPaid:
		return from == SettlementApproved
	case SettlementCancelled:
		return from != SettlementPaid && from != SettlementCancelled
	}
	return false
}

// AllowedActions lists the lifecycle actions available from a status, in
// display order.
func AllowedActions(status string) []string {
	var actions []string
	if CanTransition(status, SettlementCalculated) {
		actions = append(actions, "calculate")
	}
	if CanTransition(status, SettlementApproved) {
		actions = append(actions, "approve")
	}
	if CanTransition(status, SettlementPaid) {
		actions = append(actions, "mark_as_paid")
	}
	if CanTransition(status, SettlementCancelled) {
		actions = append(actions, "cancel")
	}
	return actions
}

// IsFinal reports whether a settlement can no longer change.
func IsFinal(status string) bool {
	return status == SettlementPaid || status == SettlementCancelled
}

// FormatAmount renders a server amount for display with thousands separators.
// Formatting only; the value itself always comes from the server untouched.
func FormatAmount(amount float64) string {
	rendered := fmt.Sprintf("%.2f", amount)
	negative := strings.HasPrefix(rendered, "-")
	rendered = strings.TrimPrefix(rendered, "-")
	digits, cents, _ := strings.Cut(rendered, ".")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := strings.Join(groups, ",") + "." + cents
	if negative {
		return "-" + formatted
	}
	return formatted
}

// StatusLabel is the human form of a lifecycle status.
func StatusLabel(status string) string {
	switch status {
	case SettlementDraft:
		return "Draft"
	case SettlementCalculated:
		return "Calculated"
	case SettlementApproved:
		return "Approved"
	case SettlementPaid:
		return "Paid"
	case SettlementCancelled:
		return "Cancelled"
	}
	return status
}
