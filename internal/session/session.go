// Package session runs a single assessment attempt: answer store, navigation,
// completion gate, countdown and the NotStarted/InProgress/Completed machine.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/scoring"
)

type Option func(*Session)

// WithID sets the identifier reported in snapshots.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithClock replaces time.Now for start/end timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTickInterval changes the countdown cadence (tests use milliseconds).
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

// WithTickObserver is called after every countdown tick. It runs on the timer
// goroutine and must not call back into the session.
func WithTickObserver(fn func(remaining int)) Option {
	return func(s *Session) { s.onTick = fn }
}

// Session is one attempt at one assessment. Sessions share nothing; each owns
// its answers, pool and timer exclusively.
type Session struct {
	mu sync.Mutex

	id  string
	def *models.Assessment

	status  models.SessionStatus
	current int
	answers models.Answers

	// drag-and-drop: pool of unplaced item ids, zone id -> placed texts,
	// item id -> zone id
	available []string
	zones     map[string][]string
	placed    map[string]string

	timer        *Timer
	tickInterval time.Duration
	onTick       func(remaining int)

	now       func() time.Time
	startedAt time.Time
	result    *models.Result

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New creates a fresh session. Proctored exams wait for Begin; every other
// kind starts in progress with its timer armed.
func New(def *models.Assessment, opts ...Option) (*Session, error) {
	if def == nil || def.QuestionCount() == 0 {
		return nil, ErrEmptyAssessment
	}
	if def.Kind == models.KindDragDrop && (def.DragDrop == nil || len(def.DragDrop.Items) == 0) {
		return nil, ErrEmptyAssessment
	}
	if def.Kind == models.KindScenarioSimulation && (def.Scenario == nil || len(def.Scenario.Actions) == 0) {
		return nil, ErrEmptyAssessment
	}

	s := &Session{
		def:          def,
		now:          time.Now,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.timer = NewTimer(def.DurationSeconds, s.tickInterval, s.onTick)

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return s, nil
}

func (s *Session) ID() string                     { return s.id }
func (s *Session) Assessment() *models.Assessment { return s.def }

func (s *Session) resetLocked() {
	s.timer.Reset()
	s.current = 0
	s.answers = models.Answers{}
	s.result = nil
	s.startedAt = time.Time{}

	s.available = nil
	s.zones = nil
	s.placed = nil
	if s.def.Kind == models.KindDragDrop {
		s.available = make([]string, 0, len(s.def.DragDrop.Items))
		for _, it := range s.def.DragDrop.Items {
			s.available = append(s.available, it.ID)
		}
		s.zones = make(map[string][]string, len(s.def.DragDrop.Zones))
		for _, z := range s.def.DragDrop.Zones {
			s.zones[z.ID] = []string{}
		}
		s.placed = make(map[string]string)
	}

	if s.def.Kind == models.KindProctoredExam {
		s.status = models.SessionNotStarted
		return
	}
	s.status = models.SessionInProgress
	s.startedAt = s.now()
	s.armLocked()
}

func (s *Session) armLocked() {
	if s.timer.Duration() > 0 {
		s.timer.Start(s.ctx)
	}
}

func (s *Session) writableLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.status != models.SessionInProgress {
		return ErrNotInProgress
	}
	return nil
}

// Begin moves a proctored exam from NotStarted to InProgress. It reports
// whether the transition happened.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.def.Kind != models.KindProctoredExam || s.status != models.SessionNotStarted {
		return false
	}
	s.status = models.SessionInProgress
	s.startedAt = s.now()
	s.armLocked()
	return true
}

// ===== ANSWER STORE =====

// SelectOption records the chosen option (dropdown, proctored exam).
func (s *Session) SelectOption(index int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}

	var options []string
	switch s.def.Kind {
	case models.KindDropdownSelection:
		if index < 0 || index >= len(s.def.Dropdown) {
			return ErrUnknownQuestion
		}
		options = s.def.Dropdown[index].Options
	case models.KindProctoredExam:
		if index < 0 || index >= len(s.def.Proctored) {
			return ErrUnknownQuestion
		}
		options = s.def.Proctored[index].Options
	default:
		return ErrWrongKind
	}
	if !slices.Contains(options, option) {
		return ErrUnknownOption
	}
	s.answers[index] = models.ChoiceResponse{Option: option}
	return nil
}

// SetText overwrites the free-text answer (essay, short answer).
func (s *Session) SetText(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	if s.def.Kind != models.KindEssay && s.def.Kind != models.KindShortAnswer {
		return ErrWrongKind
	}
	if index < 0 || index >= s.def.QuestionCount() {
		return ErrUnknownQuestion
	}
	s.answers[index] = models.TextResponse{Text: text}
	return nil
}

// SetNumeric overwrites the raw numeric input. Parsing waits until scoring.
func (s *Session) SetNumeric(index int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	if s.def.Kind != models.KindNumericCalculation {
		return ErrWrongKind
	}
	if index < 0 || index >= len(s.def.Numeric) {
		return ErrUnknownQuestion
	}
	s.answers[index] = models.NumericResponse{Raw: raw}
	return nil
}

// Toggle flips selection of a hotspot or scenario action: added when absent,
// removed when present.
func (s *Session) Toggle(index int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}

	switch s.def.Kind {
	case models.KindHotspotQuiz:
		if index < 0 || index >= len(s.def.Hotspot) {
			return ErrUnknownQuestion
		}
		if !s.def.Hotspot[index].HasHotspot(id) {
			return ErrUnknownOption
		}
	case models.KindScenarioSimulation:
		if index != 0 {
			return ErrUnknownQuestion
		}
		if _, ok := s.def.Scenario.Action(id); !ok {
			return ErrUnknownOption
		}
	default:
		return ErrWrongKind
	}

	cur, _ := s.answers[index].(models.MultiSelectResponse)
	s.answers[index] = cur.Toggle(id)
	return nil
}

// Place moves an item out of the available pool into a zone.
func (s *Session) Place(itemID, zoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	if s.def.Kind != models.KindDragDrop {
		return ErrWrongKind
	}
	if !s.def.DragDrop.HasZone(zoneID) {
		return ErrUnknownZone
	}
	pos := slices.Index(s.available, itemID)
	if pos < 0 {
		return ErrUnknownItem
	}
	item, _ := s.def.DragDrop.Item(itemID)

	s.available = slices.Delete(s.available, pos, pos+1)
	s.zones[zoneID] = append(s.zones[zoneID], item.Text)
	s.placed[itemID] = zoneID
	return nil
}

// Unplace returns a placed item to the pool, keeping definition order.
func (s *Session) Unplace(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writableLocked(); err != nil {
		return err
	}
	if s.def.Kind != models.KindDragDrop {
		return ErrWrongKind
	}
	zoneID, ok := s.placed[itemID]
	if !ok {
		return ErrUnknownItem
	}
	item, _ := s.def.DragDrop.Item(itemID)

	if i := slices.Index(s.zones[zoneID], item.Text); i >= 0 {
		s.zones[zoneID] = slices.Delete(s.zones[zoneID], i, i+1)
	}
	delete(s.placed, itemID)

	pool := make([]string, 0, len(s.available)+1)
	for _, it := range s.def.DragDrop.Items {
		if it.ID == itemID || slices.Contains(s.available, it.ID) {
			pool = append(pool, it.ID)
		}
	}
	s.available = pool
	return nil
}

// ===== NAVIGATION =====

func (s *Session) canAdvanceLocked() bool {
	return CanAdvance(s.def, s.current, s.answers, len(s.available))
}

// CanAdvance evaluates the completion gate for the current question.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAdvanceLocked()
}

// Next advances one question, or completes the session from the last one.
// It is a no-op when the gate is closed or the session is not in progress.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writableLocked() != nil || !s.canAdvanceLocked() {
		return false
	}
	if s.current < s.def.QuestionCount()-1 {
		s.current++
		return true
	}
	s.completeLocked()
	return true
}

// Previous steps back one question regardless of the gate.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writableLocked() != nil || s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Complete finishes the session. For a proctored exam this is Submit and is
// always allowed once started; elsewhere it equals Next on the last question.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writableLocked() != nil {
		return false
	}
	if s.def.Kind == models.KindProctoredExam {
		s.completeLocked()
		return true
	}
	if s.current != s.def.QuestionCount()-1 || !s.canAdvanceLocked() {
		return false
	}
	s.completeLocked()
	return true
}

func (s *Session) completeLocked() {
	s.timer.Stop()
	s.status = models.SessionCompleted

	res := scoring.Evaluate(scoring.Input{
		Assessment: s.def,
		Answers:    s.answers.Clone(),
		Zones:      cloneZones(s.zones),
		StartedAt:  s.startedAt,
		EndedAt:    s.now(),
	})
	s.result = &res
}

// Restart discards every answer and returns to the initial state.
func (s *Session) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.resetLocked()
	return true
}

// Close releases the timer. A closed session rejects every operation.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.timer.Stop()
	s.cancel()
}

// ===== READ SIDE =====

func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) TimeRemaining() int {
	return s.timer.Remaining()
}

// TimerRunning reports whether the countdown goroutine is armed.
func (s *Session) TimerRunning() bool {
	return s.timer.Running()
}

// Result returns the snapshot computed at completion.
func (s *Session) Result() (models.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return models.Result{}, false
	}
	return *s.result, true
}

// Snapshot copies the current state.
func (s *Session) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.def.QuestionCount()
	remaining := s.timer.Remaining()
	st := models.State{
		SessionID:      s.id,
		AssessmentKey:  s.def.Key,
		Kind:           s.def.Kind,
		Status:         s.status,
		CurrentIndex:   s.current,
		QuestionsCount: n,
		IsFirst:        s.current == 0,
		IsLast:         s.current == n-1,
		CanAdvance:     s.canAdvanceLocked(),
		Answers:        s.answers.Clone(),
		TimeRemaining:  remaining,
		Clock:          FormatClock(remaining),
	}
	if s.def.Kind == models.KindDragDrop {
		st.AvailableItems = append([]string{}, s.available...)
		st.Zones = cloneZones(s.zones)
	}
	if s.def.Kind == models.KindEssay {
		r, _ := s.answers[s.current].(models.TextResponse)
		st.WordCount = scoring.WordCount(r.Text)
		if limit := s.def.Essay[s.current].MaxWords; limit > 0 {
			st.OverWordLimit = st.WordCount > limit
		}
	}
	if !s.startedAt.IsZero() {
		started := s.startedAt
		st.StartedAt = &started
	}
	if s.result != nil {
		res := *s.result
		st.Result = &res
	}
	return st
}

func cloneZones(z map[string][]string) map[string][]string {
	if z == nil {
		return nil
	}
	out := make(map[string][]string, len(z))
	for k, v := range z {
		out[k] = append([]string{}, v...)
	}
	return out
}
