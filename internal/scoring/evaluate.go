package scoring

import (
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// Input is everything a completed session hands to the scorer.
type Input struct {
	Assessment *models.Assessment
	Answers    models.Answers
	Zones      map[string][]string
	StartedAt  time.Time
	EndedAt    time.Time
}

// Evaluate produces the result snapshot for a completed session.
func Evaluate(in Input) models.Result {
	def := in.Assessment
	res := models.Result{
		AssessmentKey: def.Key,
		Kind:          def.Kind,
		CompletedAt:   in.EndedAt,
	}

	switch def.Kind {
	case models.KindDropdownSelection:
		setScored(&res, Dropdown(def.Dropdown, in.Answers))
	case models.KindNumericCalculation:
		setScored(&res, Numeric(def.Numeric, in.Answers))
	case models.KindDragDrop:
		var items []models.DragItem
		if def.DragDrop != nil {
			items = def.DragDrop.Items
		}
		setScored(&res, DragDrop(items, in.Zones))
	case models.KindHotspotQuiz:
		t := Hotspot(def.Hotspot, in.Answers)
		res.Outcome = models.OutcomeScored
		res.CorrectCount, res.TotalCount = t.Correct, t.Total
		res.Score = HotspotPercent(t)
	case models.KindScenarioSimulation:
		sel, _ := in.Answers[0].(models.MultiSelectResponse)
		res.Outcome = models.OutcomeGraded
		res.Score = ScenarioEffectiveness(def.Scenario, sel)
		res.Grade = LetterGrade(res.Score)
		if def.Scenario != nil {
			res.TotalCount = len(def.Scenario.Actions)
		}
	case models.KindEssay, models.KindShortAnswer:
		res.Outcome = models.OutcomeSubmittedForReview
		res.TotalCount = def.QuestionCount()
	case models.KindProctoredExam:
		res.Outcome = models.OutcomeRecorded
		res.TotalCount = def.QuestionCount()
		if !in.StartedAt.IsZero() && in.EndedAt.After(in.StartedAt) {
			res.ElapsedSeconds = int(in.EndedAt.Sub(in.StartedAt) / time.Second)
		}
	}
	return res
}

func setScored(res *models.Result, t Tally) {
	res.Outcome = models.OutcomeScored
	res.CorrectCount = t.Correct
	res.TotalCount = t.Total
	res.Score = t.Percent()
}
