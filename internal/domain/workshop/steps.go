package workshop

import "fmt"

// TotalSteps is the length of the fixed session template. Step numbers are
// 1-based and the step set of every workshop is exactly {1..TotalSteps}.
const TotalSteps = 6

// StepSpec is one unit of the fixed session template.
type StepSpec struct {
	Number   int    `yaml:"number"`
	Title    string `yaml:"title"`
	Duration string `yaml:"duration"`
	Prompt   string `yaml:"prompt"`
}

// DefaultStepTemplate is the built-in session template, used when the catalog
// seed does not override it.
var DefaultStepTemplate = []StepSpec{
	{Number: 1, Title: "Introduction", Duration: "10 min", Prompt: "Set expectations for the session and introduce the participants."},
	{Number: 2, Title: "Define Purpose", Duration: "25 min", Prompt: "Why does this brand exist beyond making money?"},
	{Number: 3, Title: "Unique Approach", Duration: "25 min", Prompt: "How does the brand deliver on its purpose differently from competitors?"},
	{Number: 4, Title: "Customer Connections", Duration: "20 min", Prompt: "Where does the purpose resonate with what customers actually value?"},
	{Number: 5, Title: "Canvas Review", Duration: "15 min", Prompt: "Walk the canvas together and challenge every statement."},
	{Number: 6, Title: "Synthesis", Duration: "15 min", Prompt: "Capture the agreed statements, open threads and next actions."},
}

// ValidStep reports whether n falls inside the template.
func ValidStep(n int) bool {
	return n >= 1 && n <= TotalSteps
}

// CheckStep returns ErrInvalidStep for out-of-range step numbers.
func CheckStep(n int) error {
	if !ValidStep(n) {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidStep, n, TotalSteps)
	}
	return nil
}

// ClampStep pins a cursor move to [1, TotalSteps]. Navigation never fails.
func ClampStep(n int) int {
	if n < 1 {
		return 1
	}
	if n > TotalSteps {
		return TotalSteps
	}
	return n
}

// Progress converts a completed-step count into a percentage of the template.
func Progress(completed int) float64 {
	if completed < 0 {
		completed = 0
	}
	if completed > TotalSteps {
		completed = TotalSteps
	}
	return float64(completed) / float64(TotalSteps) * 100
}
