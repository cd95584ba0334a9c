package validation

import "math"

// Method identifies one of the four research activities tracked per brand asset.
type Method string

const (
	MethodAIExploration Method = "AI_EXPLORATION"
	MethodWorkshop      Method = "WORKSHOP"
	MethodInterviews    Method = "INTERVIEWS"
	MethodQuestionnaire Method = "QUESTIONNAIRE"
)

// AllMethods is the fixed method set, in weight-table order.
var AllMethods = []Method{MethodAIExploration, MethodWorkshop, MethodInterviews, MethodQuestionnaire}

// MethodStatus is the lifecycle state of a single research method.
type MethodStatus string

const (
	MethodNotStarted MethodStatus = "NOT_STARTED"
	MethodAvailable  MethodStatus = "AVAILABLE"
	MethodInProgress MethodStatus = "IN_PROGRESS"
	MethodCompleted  MethodStatus = "COMPLETED"
	MethodValidated  MethodStatus = "VALIDATED"
)

// Weights is the fixed contribution table. It sums to 1.0 when all four
// methods exist; absent methods contribute 0 and the remaining weights are
// never renormalized.
var Weights = map[Method]float64{
	MethodAIExploration: 0.15,
	MethodWorkshop:      0.30,
	MethodInterviews:    0.25,
	MethodQuestionnaire: 0.30,
}

// Weight returns the fixed weight for a method, 0 for unknown types.
func Weight(m Method) float64 {
	return Weights[m]
}

// MethodView is the aggregator's read model of one research method.
type MethodView struct {
	Method   Method
	Status   MethodStatus
	Progress float64 // 0-100, meaningful only while IN_PROGRESS
}

func (v MethodView) done() bool {
	return v.Status == MethodCompleted || v.Status == MethodValidated
}

// ComputePercentage rolls the method views up into one weighted completeness
// percentage, rounded to 2 decimal places. Done methods contribute their full
// weight, in-progress methods a progress-scaled share, everything else 0.
func ComputePercentage(methods []MethodView) float64 {
	var sum float64
	for _, v := range methods {
		w := Weight(v.Method)
		switch {
		case v.done():
			sum += w * 100
		case v.Status == MethodInProgress:
			p := v.Progress
			if p < 0 {
				p = 0
			}
			if p > 100 {
				p = 100
			}
			sum += w * p
		}
	}
	if sum < 0 {
		sum = 0
	}
	if sum > 100 {
		sum = 100
	}
	return math.Round(sum*100) / 100
}

// CompletedCount counts methods whose status is COMPLETED or VALIDATED.
func CompletedCount(methods []MethodView) int {
	n := 0
	for _, v := range methods {
		if v.done() {
			n++
		}
	}
	return n
}

// AssetStatus is the derived validation state of a brand asset.
type AssetStatus string

const (
	AssetNotValidated AssetStatus = "NOT_VALIDATED"
	AssetInValidation AssetStatus = "IN_VALIDATION"
	AssetValidated    AssetStatus = "VALIDATED"
)

// DeriveAssetStatus maps a validation percentage onto the asset status badge.
func DeriveAssetStatus(percentage float64) AssetStatus {
	switch {
	case percentage <= 0:
		return AssetNotValidated
	case percentage >= 100:
		return AssetValidated
	default:
		return AssetInValidation
	}
}

// WithWorkshopCompleted returns a copy of the method views with the WORKSHOP
// method forced to COMPLETED, which is the only effect an in-flight workshop
// purchase can have on an asset. If no WORKSHOP view exists one is appended.
func WithWorkshopCompleted(methods []MethodView) []MethodView {
	out := make([]MethodView, 0, len(methods)+1)
	found := false
	for _, v := range methods {
		if v.Method == MethodWorkshop {
			v.Status = MethodCompleted
			v.Progress = 0
			found = true
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, MethodView{Method: MethodWorkshop, Status: MethodCompleted})
	}
	return out
}
