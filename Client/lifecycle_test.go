package Client

import (
	"reflect"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{SettlementDraft, SettlementCalculated, true},
		{SettlementCalculated, SettlementCalculated, true}, // recalculate
		{SettlementDraft, SettlementApproved, false},
		{SettlementCalculated, SettlementApproved, true},
		{SettlementApproved, SettlementPaid, true},
		{SettlementCalculated, SettlementPaid, false},
		{SettlementDraft, SettlementCancelled, true},
		{SettlementApproved, SettlementCancelled, true},
		{SettlementPaid, SettlementCancelled, false},
		{SettlementCancelled, SettlementCancelled, false},
		{SettlementPaid, SettlementCalculated, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestAllowedActions(t *testing.T) {
	if got := AllowedActions(SettlementDraft); !reflect.DeepEqual(got, []string{"calculate", "cancel"}) {
		t.Fatalf("draft actions: %v", got)
	}
	if got := AllowedActions(SettlementCalculated); !reflect.DeepEqual(got, []string{"calculate", "approve", "cancel"}) {
		t.Fatalf("calculated actions: %v", got)
	}
	if got := AllowedActions(SettlementApproved); !reflect.DeepEqual(got, []string{"mark_as_paid", "cancel"}) {
		t.Fatalf("approved actions: %v", got)
	}
	if got := AllowedActions(SettlementPaid); len(got) != 0 {
		t.Fatalf("paid must have no actions: %v", got)
	}
	if got := AllowedActions(SettlementCancelled); len(got) != 0 {
		t.Fatalf("cancelled must have no actions: %v", got)
	}
}

func TestIsFinal(t *testing.T) {
	if !IsFinal(SettlementPaid) || !IsFinal(SettlementCancelled) {
		t.Fatalf("paid and cancelled are final")
	}
	if IsFinal(SettlementDraft) || IsFinal(SettlementApproved) {
		t.Fatalf("draft and approved are not final")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{80000, "80,000.00"},
		{1234567.5, "1,234,567.50"},
		{999.99, "999.99"},
		{-10000, "-10,000.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
