package scoring

import (
	"math"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// ScenarioMultiplier is the flat discount applied to summed action effectiveness.
const ScenarioMultiplier = 0.8

// Dropdown counts exact string matches against each question's correct answer.
func Dropdown(questions []models.DropdownQuestion, answers models.Answers) Tally {
	t := Tally{Total: len(questions)}
	for i, q := range questions {
		if r, ok := answers[i].(models.ChoiceResponse); ok && r.Option == q.CorrectAnswer {
			t.Correct++
		}
	}
	return t
}

// DragDrop marks an item correct when its text sits in the zone named by its
// correct_zone. A zone that was never filled, or does not exist, is a miss.
func DragDrop(items []models.DragItem, zones map[string][]string) Tally {
	t := Tally{Total: len(items)}
	for _, item := range items {
		for _, text := range zones[item.CorrectZone] {
			if text == item.Text {
				t.Correct++
				break
			}
		}
	}
	return t
}

// Hotspot sums correct selections over the number of correct regions across all
// questions. Extra incorrect selections are not penalised.
func Hotspot(questions []models.HotspotQuestion, answers models.Answers) Tally {
	var t Tally
	for i, q := range questions {
		t.Total += len(q.CorrectHotspots)
		sel, ok := answers[i].(models.MultiSelectResponse)
		if !ok {
			continue
		}
		for _, id := range q.CorrectHotspots {
			if sel.Contains(id) {
				t.Correct++
			}
		}
	}
	return t
}

// HotspotPercent applies the max(totalPossible, 1) guard.
func HotspotPercent(t Tally) float64 {
	return math.Round(100 * float64(t.Correct) / float64(max(t.Total, 1)))
}

// NumericCorrect reports whether raw parses to a value within tolerance of the
// expected answer. NaN never matches.
func NumericCorrect(q models.NumericQuestion, raw string) bool {
	v := ParseFloat(raw)
	if math.IsNaN(v) {
		return false
	}
	return math.Abs(v-q.CorrectAnswer) <= q.Tolerance
}

func Numeric(questions []models.NumericQuestion, answers models.Answers) Tally {
	t := Tally{Total: len(questions)}
	for i, q := range questions {
		if r, ok := answers[i].(models.NumericResponse); ok && NumericCorrect(q, r.Raw) {
			t.Correct++
		}
	}
	return t
}

// ScenarioEffectiveness returns min(100, sum(selected effectiveness) * 0.8).
// Unknown action ids contribute nothing.
func ScenarioEffectiveness(scenario *models.Scenario, selected models.MultiSelectResponse) float64 {
	if scenario == nil {
		return 0
	}
	var sum float64
	for _, id := range selected.IDs {
		if a, ok := scenario.Action(id); ok {
			sum += a.Effectiveness
		}
	}
	return math.Min(100, sum*ScenarioMultiplier)
}
