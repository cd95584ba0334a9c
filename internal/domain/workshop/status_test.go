package workshop

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "purchase", from: StatusToBuy, to: StatusPurchased, want: true},
		{name: "schedule", from: StatusPurchased, to: StatusScheduled, want: true},
		{name: "start_without_schedule", from: StatusPurchased, to: StatusInProgress, want: true},
		{name: "start_scheduled", from: StatusScheduled, to: StatusInProgress, want: true},
		{name: "complete", from: StatusInProgress, to: StatusCompleted, want: true},
		{name: "cancel_to_buy", from: StatusToBuy, to: StatusCancelled, want: true},
		{name: "cancel_purchased", from: StatusPurchased, to: StatusCancelled, want: true},
		{name: "cancel_in_progress", from: StatusInProgress, to: StatusCancelled, want: true},
		{name: "cancel_completed", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "complete_twice", from: StatusCompleted, to: StatusCompleted, want: false},
		{name: "restart_completed", from: StatusCompleted, to: StatusInProgress, want: false},
		{name: "restart_cancelled", from: StatusCancelled, to: StatusInProgress, want: false},
		{name: "skip_purchase", from: StatusToBuy, to: StatusInProgress, want: false},
		{name: "backwards", from: StatusInProgress, to: StatusScheduled, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%s, %s)=%v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestTransitionError(t *testing.T) {
	if _, err := Transition(StatusCompleted, StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Transition on completed workshop: got %v, want ErrInvalidTransition", err)
	}
	got, err := Transition(StatusInProgress, StatusCompleted)
	if err != nil {
		t.Fatalf("Transition(IN_PROGRESS, COMPLETED) unexpected error: %v", err)
	}
	if got != StatusCompleted {
		t.Fatalf("Transition returned %s, want %s", got, StatusCompleted)
	}
}

func TestStartTarget(t *testing.T) {
	cases := []struct {
		name       string
		current    Status
		want       Status
		wantChange bool
		wantErr    bool
	}{
		{name: "purchased_starts", current: StatusPurchased, want: StatusInProgress, wantChange: true},
		{name: "scheduled_starts", current: StatusScheduled, want: StatusInProgress, wantChange: true},
		{name: "in_progress_idempotent", current: StatusInProgress, want: StatusInProgress, wantChange: false},
		{name: "completed_rejected", current: StatusCompleted, wantErr: true},
		{name: "cancelled_rejected", current: StatusCancelled, wantErr: true},
		{name: "to_buy_rejected", current: StatusToBuy, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed, err := StartTarget(tc.current)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("StartTarget(%s): got err %v, want ErrInvalidTransition", tc.current, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StartTarget(%s): unexpected error %v", tc.current, err)
			}
			if got != tc.want || changed != tc.wantChange {
				t.Fatalf("StartTarget(%s)=(%s,%v), want (%s,%v)", tc.current, got, changed, tc.want, tc.wantChange)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	for _, s := range []Status{StatusToBuy, StatusPurchased, StatusScheduled, StatusInProgress} {
		if !s.Editable() {
			t.Fatalf("%s should be editable", s)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if s.Editable() {
			t.Fatalf("%s should not be editable", s)
		}
	}
}
