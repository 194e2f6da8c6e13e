package models

type AssessmentKind string

const (
	KindDropdownSelection  AssessmentKind = "dropdown_selection"
	KindDragDrop           AssessmentKind = "drag_drop"
	KindEssay              AssessmentKind = "essay"
	KindShortAnswer        AssessmentKind = "short_answer"
	KindNumericCalculation AssessmentKind = "numeric_calculation"
	KindHotspotQuiz        AssessmentKind = "hotspot_quiz"
	KindScenarioSimulation AssessmentKind = "scenario_simulation"
	KindProctoredExam      AssessmentKind = "proctored_exam"
)

// AllKinds lists every assessment kind a runner can host.
var AllKinds = []AssessmentKind{
	KindDropdownSelection,
	KindDragDrop,
	KindEssay,
	KindShortAnswer,
	KindNumericCalculation,
	KindHotspotQuiz,
	KindScenarioSimulation,
	KindProctoredExam,
}

// IsSingleScreen reports whether the kind is answered on one screen
// (question count is always 1).
func (k AssessmentKind) IsSingleScreen() bool {
	return k == KindDragDrop || k == KindScenarioSimulation
}

// Assessment is the static, immutable definition a session runs against.
// Exactly one kind-specific payload is populated, matching Kind.
type Assessment struct {
	Key             string         `json:"key" validate:"required,min=1,max=100"`
	Title           string         `json:"title" validate:"required,min=1,max=200"`
	Description     string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Kind            AssessmentKind `json:"kind" validate:"required,assessment_kind"`
	DurationSeconds int            `json:"duration_seconds" validate:"min=0,max=86400"` // 0 = untimed

	Dropdown    []DropdownQuestion    `json:"dropdown,omitempty" validate:"omitempty,dive"`
	ShortAnswer []ShortAnswerQuestion `json:"short_answer,omitempty" validate:"omitempty,dive"`
	Essay       []EssayQuestion       `json:"essay,omitempty" validate:"omitempty,dive"`
	Numeric     []NumericQuestion     `json:"numeric,omitempty" validate:"omitempty,dive"`
	Hotspot     []HotspotQuestion     `json:"hotspot,omitempty" validate:"omitempty,dive"`
	DragDrop    *DragDropExercise     `json:"drag_drop,omitempty" validate:"omitempty"`
	Scenario    *Scenario             `json:"scenario,omitempty" validate:"omitempty"`
	Proctored   []ProctoredQuestion   `json:"proctored,omitempty" validate:"omitempty,dive"`
}

// QuestionCount returns the number of navigable screens for the assessment.
func (a *Assessment) QuestionCount() int {
	switch a.Kind {
	case KindDropdownSelection:
		return len(a.Dropdown)
	case KindShortAnswer:
		return len(a.ShortAnswer)
	case KindEssay:
		return len(a.Essay)
	case KindNumericCalculation:
		return len(a.Numeric)
	case KindHotspotQuiz:
		return len(a.Hotspot)
	case KindProctoredExam:
		return len(a.Proctored)
	case KindDragDrop, KindScenarioSimulation:
		return 1
	}
	return 0
}

// Summary is the catalog listing view of an assessment.
type Summary struct {
	Key             string         `json:"key"`
	Title           string         `json:"title"`
	Kind            AssessmentKind `json:"kind"`
	DurationSeconds int            `json:"duration_seconds"`
	QuestionsCount  int            `json:"questions_count"`
}

func (a *Assessment) Summary() Summary {
	return Summary{
		Key:             a.Key,
		Title:           a.Title,
		Kind:            a.Kind,
		DurationSeconds: a.DurationSeconds,
		QuestionsCount:  a.QuestionCount(),
	}
}

type DropdownQuestion struct {
	ID            string   `json:"id" validate:"required"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

type ShortAnswerQuestion struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type EssayQuestion struct {
	ID       string `json:"id" validate:"required"`
	Prompt   string `json:"prompt" validate:"required"`
	MinWords int    `json:"min_words" validate:"min=0"`
	MaxWords int    `json:"max_words" validate:"min=0"` // 0 = no upper limit
}

type NumericQuestion struct {
	ID            string  `json:"id" validate:"required"`
	Text          string  `json:"text" validate:"required"`
	CorrectAnswer float64 `json:"correct_answer"`
	Tolerance     float64 `json:"tolerance" validate:"min=0"`
	Unit          string  `json:"unit,omitempty"`
}

type Hotspot struct {
	ID    string  `json:"id" validate:"required"`
	Label string  `json:"label" validate:"required"`
	X     float64 `json:"x"` // percent of image width
	Y     float64 `json:"y"` // percent of image height
}

type HotspotQuestion struct {
	ID              string    `json:"id" validate:"required"`
	Text            string    `json:"text" validate:"required"`
	ImageURL        string    `json:"image_url,omitempty"`
	Hotspots        []Hotspot `json:"hotspots" validate:"required,min=1,dive"`
	CorrectHotspots []string  `json:"correct_hotspots" validate:"required,min=1"`
}

// HasHotspot reports whether id names a selectable region of the question.
func (q *HotspotQuestion) HasHotspot(id string) bool {
	for _, h := range q.Hotspots {
		if h.ID == id {
			return true
		}
	}
	return false
}

type DragItem struct {
	ID          string `json:"id" validate:"required"`
	Text        string `json:"text" validate:"required"`
	CorrectZone string `json:"correct_zone" validate:"required"`
}

type DropZone struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
}

type DragDropExercise struct {
	Instructions string     `json:"instructions,omitempty"`
	Items        []DragItem `json:"items" validate:"required,min=1,dive"`
	Zones        []DropZone `json:"zones" validate:"required,min=1,dive"`
}

// Item returns the item definition with the given id.
func (e *DragDropExercise) Item(id string) (DragItem, bool) {
	for _, it := range e.Items {
		if it.ID == id {
			return it, true
		}
	}
	return DragItem{}, false
}

func (e *DragDropExercise) HasZone(id string) bool {
	for _, z := range e.Zones {
		if z.ID == id {
			return true
		}
	}
	return false
}

type ScenarioAction struct {
	ID            string  `json:"id" validate:"required"`
	Label         string  `json:"label" validate:"required"`
	Effectiveness float64 `json:"effectiveness" validate:"min=0,max=100"`
}

type Scenario struct {
	Situation string           `json:"situation" validate:"required"`
	Actions   []ScenarioAction `json:"actions" validate:"required,min=1,dive"`
}

func (s *Scenario) Action(id string) (ScenarioAction, bool) {
	for _, a := range s.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return ScenarioAction{}, false
}

type ProctoredQuestion struct {
	ID      string   `json:"id" validate:"required"`
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options" validate:"required,min=2"`
}
