package workshop

import (
	"errors"
	"testing"
)

func TestCheckStep(t *testing.T) {
	for n := 1; n <= TotalSteps; n++ {
		if err := CheckStep(n); err != nil {
			t.Fatalf("CheckStep(%d) unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{0, -1, TotalSteps + 1, 100} {
		if err := CheckStep(n); !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("CheckStep(%d): got %v, want ErrInvalidStep", n, err)
		}
	}
}

func TestClampStep(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1}, {-5, 1}, {1, 1}, {3, 3}, {TotalSteps, TotalSteps}, {TotalSteps + 1, TotalSteps}, {42, TotalSteps},
	}
	for _, tc := range cases {
		if got := ClampStep(tc.in); got != tc.want {
			t.Fatalf("ClampStep(%d)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0); got != 0 {
		t.Fatalf("Progress(0)=%v, want 0", got)
	}
	if got := Progress(TotalSteps); got != 100 {
		t.Fatalf("Progress(all)=%v, want 100", got)
	}
	if got := Progress(3); got != 50 {
		t.Fatalf("Progress(3)=%v, want 50", got)
	}
	if got := Progress(TotalSteps + 2); got != 100 {
		t.Fatalf("Progress over cap=%v, want 100", got)
	}
}

func TestDefaultStepTemplate(t *testing.T) {
	if len(DefaultStepTemplate) != TotalSteps {
		t.Fatalf("template has %d steps, want %d", len(DefaultStepTemplate), TotalSteps)
	}
	for i, s := range DefaultStepTemplate {
		if s.Number != i+1 {
			t.Fatalf("step %d has number %d", i, s.Number)
		}
		if s.Title == "" {
			t.Fatalf("step %d has empty title", s.Number)
		}
	}
}
