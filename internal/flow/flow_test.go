package flow

import "testing"

func TestRegistrationPaths(t *testing.T) {
	if next, ok := Next(StateRegistering, TriggerSubmitCash); !ok || next != StateSuccess {
		t.Fatalf("cash submission should land on success, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateRegistering, TriggerSubmitTransfer); !ok || next != StateAwaitingPayment {
		t.Fatalf("transfer submission should await payment, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateAwaitingPayment, TriggerPaymentApproved); !ok || next != StateSuccess {
		t.Fatalf("approval should land on success, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateSuccess, TriggerStartOver); !ok || next != StateRegistering {
		t.Fatalf("start over should return to registering, got %s (%v)", next, ok)
	}
}

func TestAdminPaths(t *testing.T) {
	if next, ok := Next(StateAdminLoginPending, TriggerAdminLogin); !ok || next != StateAdminAuthenticated {
		t.Fatalf("login should authenticate, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateAdminAuthenticated, TriggerOpenScanner); !ok || next != StateScanning {
		t.Fatalf("scanner should open from the dashboard, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateScanning, TriggerCloseScanner); !ok || next != StateAdminAuthenticated {
		t.Fatalf("closing the scanner should return to the dashboard, got %s (%v)", next, ok)
	}
}

func TestDisallowedTriggerHoldsState(t *testing.T) {
	if next, ok := Next(StateRegistering, TriggerAdminLogin); ok || next != StateRegistering {
		t.Fatalf("disallowed trigger should hold state, got %s (%v)", next, ok)
	}
	if next, ok := Next(StateSuccess, TriggerSubmitCash); ok || next != StateSuccess {
		t.Fatalf("re-submitting from success should be disallowed, got %s (%v)", next, ok)
	}
}
