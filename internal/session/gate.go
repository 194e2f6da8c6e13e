package session

import (
	"strings"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/scoring"
)

// CanAdvance is the completion gate for the question at index. It only reads
// state: an answer being present (or long enough) is what unlocks Next, never
// its correctness. availableItems is the drag-and-drop pool size.
func CanAdvance(def *models.Assessment, index int, answers models.Answers, availableItems int) bool {
	if def == nil {
		return false
	}
	switch def.Kind {
	case models.KindDropdownSelection:
		_, ok := answers[index].(models.ChoiceResponse)
		return ok
	case models.KindShortAnswer:
		r, ok := answers[index].(models.TextResponse)
		return ok && strings.TrimSpace(r.Text) != ""
	case models.KindEssay:
		if index < 0 || index >= len(def.Essay) {
			return false
		}
		r, _ := answers[index].(models.TextResponse)
		return scoring.WordCount(r.Text) >= def.Essay[index].MinWords
	case models.KindNumericCalculation:
		r, ok := answers[index].(models.NumericResponse)
		return ok && strings.TrimSpace(r.Raw) != ""
	case models.KindHotspotQuiz, models.KindScenarioSimulation:
		r, ok := answers[index].(models.MultiSelectResponse)
		return ok && len(r.IDs) > 0
	case models.KindDragDrop:
		return availableItems == 0
	case models.KindProctoredExam:
		return true
	}
	return false
}
