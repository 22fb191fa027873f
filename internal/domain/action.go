package domain

import "strconv"

// Action identifies the transaction type requested from the gateway.
// The codes are fixed by the terminal integration kit.
type Action int

const (
	ActionPurchase Action = 1
	ActionRefund   Action = 2
	ActionVoid     Action = 3
	ActionInquiry  Action = 8
)

// Code returns the wire value sent in the "action" parameter.
func (a Action) Code() string {
	return strconv.Itoa(int(a))
}

func (a Action) String() string {
	switch a {
	case ActionPurchase:
		return "PURCHASE"
	case ActionRefund:
		return "REFUND"
	case ActionVoid:
		return "VOID"
	case ActionInquiry:
		return "INQUIRY"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether a is one of the closed set of action codes.
func (a Action) Valid() bool {
	switch a {
	case ActionPurchase, ActionRefund, ActionVoid, ActionInquiry:
		return true
	}
	return false
}
