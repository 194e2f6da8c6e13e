package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"138", 138},
		{"  136.0", 136},
		{"140.1", 140.1},
		{"-2.5", -2.5},
		{".5", 0.5},
		{"12.", 12},
		{"12.5kg", 12.5},
		{"1e3", 1000},
		{"1e", 1},
		{"+7", 7},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloat(tt.in), tt.in)
	}

	for _, in := range []string{"", "abc", "  ", "-", ".", "e5", "kg12"} {
		assert.True(t, math.IsNaN(ParseFloat(in)), "%q should be NaN", in)
	}
}

func TestNumericCorrect_ToleranceBoundary(t *testing.T) {
	q := models.NumericQuestion{ID: "n1", CorrectAnswer: 138, Tolerance: 2}

	tests := []struct {
		raw  string
		want bool
	}{
		{"138", true},
		{"136", true},
		{"140", true},
		{"135.9", false},
		{"140.1", false},
		{"abc", false},
		{"", false},
		{"139 mg", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NumericCorrect(q, tt.raw), tt.raw)
	}
}

func TestPercent_Rounding(t *testing.T) {
	assert.Equal(t, float64(0), Percent(0, 0))
	assert.Equal(t, float64(0), Percent(3, -1))
	assert.Equal(t, float64(33), Percent(1, 3))
	assert.Equal(t, float64(67), Percent(2, 3))
	assert.Equal(t, float64(50), Percent(1, 2))
	assert.Equal(t, float64(13), Percent(1, 8), "12.5 rounds half away from zero")
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{100, "A"}, {90, "A"}, {89.9, "B"}, {80, "B"}, {79, "C"},
		{70, "C"}, {69, "D"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.value), "%v", tt.value)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("  \n\t "))
	assert.Equal(t, 3, WordCount(" one  two\nthree "))
}

func dropdownQuestions() []models.DropdownQuestion {
	return []models.DropdownQuestion{
		{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q2", Options: []string{"a", "b"}, CorrectAnswer: "b"},
		{ID: "q3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{ID: "q4", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	}
}

func TestDropdown_Monotonic(t *testing.T) {
	qs := dropdownQuestions()
	answers := models.Answers{}
	prev := Dropdown(qs, answers).Percent()
	for i, q := range qs {
		answers[i] = models.ChoiceResponse{Option: q.CorrectAnswer}
		cur := Dropdown(qs, answers).Percent()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, float64(100), prev)
}

func TestDropdown_IgnoresForeignResponses(t *testing.T) {
	answers := models.Answers{
		0: models.TextResponse{Text: "a"},
		1: models.ChoiceResponse{Option: "b"},
	}
	assert.Equal(t, Tally{Correct: 1, Total: 4}, Dropdown(dropdownQuestions(), answers))
}

func TestDragDrop_Rules(t *testing.T) {
	items := []models.DragItem{
		{ID: "react", Text: "React.js", CorrectZone: "frontend"},
		{ID: "node", Text: "Node.js", CorrectZone: "backend"},
		{ID: "ghost", Text: "Ghost", CorrectZone: "nowhere"},
	}

	zones := map[string][]string{"frontend": {}, "backend": {}}
	prev := DragDrop(items, zones).Percent()
	assert.Equal(t, float64(0), prev)

	zones["frontend"] = append(zones["frontend"], "React.js")
	cur := DragDrop(items, zones).Percent()
	assert.GreaterOrEqual(t, cur, prev)

	zones["backend"] = append(zones["backend"], "Node.js")
	tally := DragDrop(items, zones)
	assert.Equal(t, Tally{Correct: 2, Total: 3}, tally, "a missing zone is incorrect, never a panic")
	assert.Equal(t, Tally{Total: 3}, DragDrop(items, nil))
}

func TestNumeric_Monotonic(t *testing.T) {
	qs := []models.NumericQuestion{
		{ID: "n1", CorrectAnswer: 138, Tolerance: 2},
		{ID: "n2", CorrectAnswer: 10, Tolerance: 0},
	}
	answers := models.Answers{0: models.NumericResponse{Raw: "1"}, 1: models.NumericResponse{Raw: "x"}}
	assert.Equal(t, float64(0), Numeric(qs, answers).Percent())

	answers[0] = models.NumericResponse{Raw: "137"}
	assert.Equal(t, float64(50), Numeric(qs, answers).Percent())

	answers[1] = models.NumericResponse{Raw: "10"}
	assert.Equal(t, float64(100), Numeric(qs, answers).Percent())
}

func TestHotspot_FalsePositivesAreFree(t *testing.T) {
	qs := []models.HotspotQuestion{
		{ID: "h1", Hotspots: []models.Hotspot{{ID: "a"}, {ID: "b"}, {ID: "c"}}, CorrectHotspots: []string{"a", "b"}},
	}

	exact := Hotspot(qs, models.Answers{0: models.MultiSelectResponse{IDs: []string{"a", "b"}}})
	extra := Hotspot(qs, models.Answers{0: models.MultiSelectResponse{IDs: []string{"a", "b", "c"}}})
	assert.Equal(t, exact, extra)
	assert.Equal(t, float64(100), HotspotPercent(extra))

	assert.Equal(t, float64(0), HotspotPercent(Tally{}), "no possible hotspots divides by one")
}

func TestScenarioEffectiveness(t *testing.T) {
	sc := &models.Scenario{Actions: []models.ScenarioAction{
		{ID: "a", Effectiveness: 70},
		{ID: "b", Effectiveness: 85},
		{ID: "c", Effectiveness: 60},
		{ID: "d", Effectiveness: 80},
	}}

	tests := []struct {
		name     string
		selected []string
		want     float64
	}{
		{"nothing", nil, 0},
		{"single", []string{"a"}, 56},
		{"clamped pair", []string{"b", "d"}, 100},
		{"all four", []string{"a", "b", "c", "d"}, 100},
		{"unknown ignored", []string{"zzz", "c"}, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScenarioEffectiveness(sc, models.MultiSelectResponse{IDs: tt.selected})
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, float64(100))
		})
	}
	assert.Equal(t, float64(0), ScenarioEffectiveness(nil, models.MultiSelectResponse{IDs: []string{"a"}}))
}

func TestEvaluate_Outcomes(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	essay := Evaluate(Input{
		Assessment: &models.Assessment{Kind: models.KindEssay, Essay: []models.EssayQuestion{{ID: "e1"}}},
		EndedAt:    start,
	})
	assert.Equal(t, models.OutcomeSubmittedForReview, essay.Outcome)
	assert.Equal(t, 1, essay.TotalCount)

	proctored := Evaluate(Input{
		Assessment: &models.Assessment{Kind: models.KindProctoredExam, Proctored: []models.ProctoredQuestion{{ID: "p1"}}},
		StartedAt:  start,
		EndedAt:    start.Add(90*time.Second + 900*time.Millisecond),
	})
	assert.Equal(t, models.OutcomeRecorded, proctored.Outcome)
	assert.Equal(t, 90, proctored.ElapsedSeconds)

	scenario := Evaluate(Input{
		Assessment: &models.Assessment{Kind: models.KindScenarioSimulation, Scenario: &models.Scenario{
			Actions: []models.ScenarioAction{{ID: "a", Effectiveness: 100}},
		}},
		Answers: models.Answers{0: models.MultiSelectResponse{IDs: []string{"a"}}},
	})
	assert.Equal(t, models.OutcomeGraded, scenario.Outcome)
	assert.Equal(t, float64(80), scenario.Score)
	assert.Equal(t, "B", scenario.Grade)
}
