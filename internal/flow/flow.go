// Package flow models the front-of-house screens as an explicit state
// machine, decoupled from any rendering.
package flow

// State names a front-of-house screen.
type State string

const (
	StateRegistering        State = "registering"
	StateAwaitingPayment    State = "awaiting_payment"
	StateSuccess            State = "success"
	StateAdminLoginPending  State = "admin_login_pending"
	StateAdminAuthenticated State = "admin_authenticated"
	StateScanning           State = "scanning"
)

// Trigger names a user action that moves between screens.
type Trigger string

const (
	TriggerSubmitCash      Trigger = "submit_cash"
	TriggerSubmitTransfer  Trigger = "submit_transfer"
	TriggerPaymentApproved Trigger = "payment_approved"
	TriggerStartOver       Trigger = "start_over"
	TriggerAdminLogin      Trigger = "admin_login"
	TriggerOpenScanner     Trigger = "open_scanner"
	TriggerCloseScanner    Trigger = "close_scanner"
)

var transitions = map[State]map[Trigger]State{
	StateRegistering: {
		TriggerSubmitCash:     StateSuccess,
		TriggerSubmitTransfer: StateAwaitingPayment,
	},
	StateAwaitingPayment: {
		TriggerPaymentApproved: StateSuccess,
	},
	StateSuccess: {
		TriggerStartOver: StateRegistering,
	},
	StateAdminLoginPending: {
		TriggerAdminLogin: StateAdminAuthenticated,
	},
	StateAdminAuthenticated: {
		TriggerOpenScanner: StateScanning,
	},
	StateScanning: {
		TriggerCloseScanner: StateAdminAuthenticated,
	},
}

// Next returns the state reached by firing trigger from current, and whether
// the transition is allowed. Disallowed triggers leave the state unchanged.
func Next(current State, trigger Trigger) (State, bool) {
	next, ok := transitions[current][trigger]
	if !ok {
		return current, false
	}
	return next, true
}
