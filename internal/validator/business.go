package validator

import (
	"fmt"
	"slices"

	"github.com/SAP-F-2025/assessment-engine/internal/errors"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// BusinessValidator checks rules that struct tags cannot express: the
// kind-specific payload of an assessment and the shape of answer requests.
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// Validate dispatches on the value type. Unknown types have no business rules.
func (b *BusinessValidator) Validate(s interface{}) ValidationErrors {
	switch v := s.(type) {
	case *models.Assessment:
		return b.ValidateAssessment(v)
	case models.Assessment:
		return b.ValidateAssessment(&v)
	case *models.AnswerRequest:
		return b.ValidateAnswer(v)
	case models.AnswerRequest:
		return b.ValidateAnswer(&v)
	}
	return nil
}

// ValidateAnswer requires exactly one payload field.
func (b *BusinessValidator) ValidateAnswer(req *models.AnswerRequest) ValidationErrors {
	set := 0
	for _, p := range []*string{req.Option, req.Text, req.Value, req.Toggle} {
		if p != nil {
			set++
		}
	}
	if set != 1 {
		return ValidationErrors{errors.NewRuleViolation("answer", "answer_payload", set)}
	}
	return nil
}

// ValidateAssessment checks that the payload matching Kind is present, that
// no other payload is, and that every reference inside it resolves.
func (b *BusinessValidator) ValidateAssessment(a *models.Assessment) ValidationErrors {
	var errs ValidationErrors

	payloads := map[models.AssessmentKind]bool{
		models.KindDropdownSelection:  len(a.Dropdown) > 0,
		models.KindShortAnswer:        len(a.ShortAnswer) > 0,
		models.KindEssay:              len(a.Essay) > 0,
		models.KindNumericCalculation: len(a.Numeric) > 0,
		models.KindHotspotQuiz:        len(a.Hotspot) > 0,
		models.KindDragDrop:           a.DragDrop != nil,
		models.KindScenarioSimulation: a.Scenario != nil,
		models.KindProctoredExam:      len(a.Proctored) > 0,
	}
	for kind, present := range payloads {
		if present != (kind == a.Kind) {
			errs = append(errs, errors.NewRuleViolation(string(kind), "kind_payload", a.Kind))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	switch a.Kind {
	case models.KindDropdownSelection:
		errs = append(errs, uniqueIDs("dropdown", len(a.Dropdown), func(i int) string { return a.Dropdown[i].ID })...)
		for i, q := range a.Dropdown {
			if !slices.Contains(q.Options, q.CorrectAnswer) {
				errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("dropdown[%d].correct_answer", i), "option_member", q.CorrectAnswer))
			}
		}
	case models.KindShortAnswer:
		errs = append(errs, uniqueIDs("short_answer", len(a.ShortAnswer), func(i int) string { return a.ShortAnswer[i].ID })...)
	case models.KindEssay:
		errs = append(errs, uniqueIDs("essay", len(a.Essay), func(i int) string { return a.Essay[i].ID })...)
		for i, q := range a.Essay {
			if q.MaxWords > 0 && q.MaxWords < q.MinWords {
				errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("essay[%d].max_words", i), "word_range", q.MaxWords))
			}
		}
	case models.KindNumericCalculation:
		errs = append(errs, uniqueIDs("numeric", len(a.Numeric), func(i int) string { return a.Numeric[i].ID })...)
	case models.KindHotspotQuiz:
		errs = append(errs, uniqueIDs("hotspot", len(a.Hotspot), func(i int) string { return a.Hotspot[i].ID })...)
		for i, q := range a.Hotspot {
			errs = append(errs, uniqueIDs(fmt.Sprintf("hotspot[%d].hotspots", i), len(q.Hotspots), func(j int) string { return q.Hotspots[j].ID })...)
			for _, id := range q.CorrectHotspots {
				if !q.HasHotspot(id) {
					errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("hotspot[%d].correct_hotspots", i), "hotspot_member", id))
				}
			}
		}
	case models.KindDragDrop:
		dd := a.DragDrop
		errs = append(errs, uniqueIDs("drag_drop.items", len(dd.Items), func(i int) string { return dd.Items[i].ID })...)
		errs = append(errs, uniqueIDs("drag_drop.zones", len(dd.Zones), func(i int) string { return dd.Zones[i].ID })...)
		// Zones hold item texts, so a repeated text would make placements ambiguous.
		texts := make(map[string]bool, len(dd.Items))
		for i, it := range dd.Items {
			if texts[it.Text] {
				errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("drag_drop.items[%d].text", i), "unique_text", it.Text))
			}
			texts[it.Text] = true
		}
		for i, it := range dd.Items {
			if !dd.HasZone(it.CorrectZone) {
				errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("drag_drop.items[%d].correct_zone", i), "zone_member", it.CorrectZone))
			}
		}
	case models.KindScenarioSimulation:
		sc := a.Scenario
		errs = append(errs, uniqueIDs("scenario.actions", len(sc.Actions), func(i int) string { return sc.Actions[i].ID })...)
	case models.KindProctoredExam:
		errs = append(errs, uniqueIDs("proctored", len(a.Proctored), func(i int) string { return a.Proctored[i].ID })...)
	}

	return errs
}

func uniqueIDs(field string, n int, id func(int) string) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if seen[v] {
			errs = append(errs, errors.NewRuleViolation(fmt.Sprintf("%s[%d].id", field, i), "unique_id", v))
		}
		seen[v] = true
	}
	return errs
}
