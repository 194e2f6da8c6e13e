package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/assessment-engine/internal/catalog"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

func sample(t *testing.T, key string) *models.Assessment {
	t.Helper()
	for _, a := range catalog.Samples() {
		if a.Key == key {
			a := a
			return &a
		}
	}
	t.Fatalf("sample %s not found", key)
	return nil
}

func newSession(t *testing.T, key string, opts ...Option) *Session {
	t.Helper()
	// An hour-long tick keeps the countdown goroutine idle during tests.
	opts = append([]Option{WithTickInterval(time.Hour)}, opts...)
	s, err := New(sample(t, key), opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestNew_RejectsEmptyAssessments(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyAssessment)

	_, err = New(&models.Assessment{Key: "x", Kind: models.KindDropdownSelection})
	assert.ErrorIs(t, err, ErrEmptyAssessment)

	_, err = New(&models.Assessment{Key: "x", Kind: models.KindDragDrop, DragDrop: &models.DragDropExercise{}})
	assert.ErrorIs(t, err, ErrEmptyAssessment)

	_, err = New(&models.Assessment{Key: "x", Kind: models.KindScenarioSimulation})
	assert.ErrorIs(t, err, ErrEmptyAssessment)
}

func TestNew_InitialStatus(t *testing.T) {
	for _, a := range catalog.Samples() {
		s := newSession(t, a.Key)
		want := models.SessionInProgress
		if a.Kind == models.KindProctoredExam {
			want = models.SessionNotStarted
		}
		assert.Equal(t, want, s.Status(), a.Key)
		assert.Equal(t, 0, s.CurrentIndex())
		assert.Equal(t, a.DurationSeconds, s.TimeRemaining())
	}
}

func TestDropdown_EndToEnd(t *testing.T) {
	correct := []string{"CSS", "PUT", "404", "<link>", "localStorage"}
	wrong := []string{"HTML", "POST", "200", "<script>", "memory"}

	tests := []struct {
		name    string
		answers []string
		score   float64
	}{
		{name: "all correct", answers: correct, score: 100},
		{name: "none correct", answers: wrong, score: 0},
		{name: "three of five", answers: []string{"CSS", "PUT", "404", "<script>", "memory"}, score: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, catalog.SampleDropdown)
			for i, opt := range tt.answers {
				assert.False(t, s.CanAdvance(), "gate closed before answering")
				require.NoError(t, s.SelectOption(i, opt))
				require.True(t, s.Next())
			}

			assert.Equal(t, models.SessionCompleted, s.Status())
			res, ok := s.Result()
			require.True(t, ok)
			assert.Equal(t, models.OutcomeScored, res.Outcome)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, 5, res.TotalCount)
		})
	}
}

func TestDropdown_RejectsUnknownOption(t *testing.T) {
	s := newSession(t, catalog.SampleDropdown)
	assert.ErrorIs(t, s.SelectOption(0, "COBOL"), ErrUnknownOption)
	assert.ErrorIs(t, s.SelectOption(9, "CSS"), ErrUnknownQuestion)
	assert.ErrorIs(t, s.SetText(0, "CSS"), ErrWrongKind)
}

func TestNavigation_StaysInBounds(t *testing.T) {
	def := sample(t, catalog.SampleDropdown)
	s, err := New(def, WithTickInterval(time.Hour))
	require.NoError(t, err)
	defer s.Close()
	n := len(def.Dropdown)

	assert.False(t, s.Previous(), "previous at first question is a no-op")
	assert.Equal(t, 0, s.CurrentIndex())

	ops := "nnpnpppnnnnpnp"
	for _, op := range ops {
		idx := s.CurrentIndex()
		if op == 'n' {
			if idx < n-1 {
				require.NoError(t, s.SelectOption(idx, def.Dropdown[idx].Options[0]))
				s.Next()
			}
		} else {
			s.Previous()
		}
		assert.GreaterOrEqual(t, s.CurrentIndex(), 0)
		assert.Less(t, s.CurrentIndex(), n)
	}
	assert.Equal(t, models.SessionInProgress, s.Status())
}

func TestNavigation_PreviousIgnoresGate(t *testing.T) {
	s := newSession(t, catalog.SampleShort)
	require.NoError(t, s.SetText(0, "Unauthorized"))
	require.True(t, s.Next())

	assert.False(t, s.CanAdvance())
	assert.False(t, s.Next(), "empty answer keeps next disabled")
	assert.True(t, s.Previous())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestShortAnswer_WhitespaceDoesNotOpenGate(t *testing.T) {
	s := newSession(t, catalog.SampleShort)
	require.NoError(t, s.SetText(0, "   \t\n"))
	assert.False(t, s.CanAdvance())
	require.NoError(t, s.SetText(0, " 401 "))
	assert.True(t, s.CanAdvance())
}

func TestEssay_MinWordsGate(t *testing.T) {
	s := newSession(t, catalog.SampleEssay)

	require.NoError(t, s.SetText(0, words(299)))
	assert.False(t, s.CanAdvance())
	assert.False(t, s.Next())
	assert.Equal(t, 299, s.Snapshot().WordCount)

	require.NoError(t, s.SetText(0, words(300)))
	assert.True(t, s.CanAdvance())
	assert.True(t, s.Next())
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestEssay_OverWordLimit(t *testing.T) {
	s := newSession(t, catalog.SampleEssay)
	require.NoError(t, s.SetText(0, words(801)))

	snap := s.Snapshot()
	assert.True(t, snap.OverWordLimit)
	assert.True(t, snap.CanAdvance, "the upper limit is advisory")
}

func TestEssay_CompletesForReview(t *testing.T) {
	s := newSession(t, catalog.SampleEssay)
	require.NoError(t, s.SetText(0, words(300)))
	require.True(t, s.Next())
	require.NoError(t, s.SetText(1, words(200)))
	require.True(t, s.Complete())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, models.OutcomeSubmittedForReview, res.Outcome)
	assert.Zero(t, res.Score)
	assert.Equal(t, 2, res.TotalCount)
}

func TestNumeric_GateAcceptsUnparsableInput(t *testing.T) {
	s := newSession(t, catalog.SampleNumeric)

	require.NoError(t, s.SetNumeric(0, "  "))
	assert.False(t, s.CanAdvance())

	require.NoError(t, s.SetNumeric(0, "abc"))
	assert.True(t, s.CanAdvance())
	require.True(t, s.Next())
	require.NoError(t, s.SetNumeric(1, "125"))
	require.True(t, s.Next())
	require.NoError(t, s.SetNumeric(2, "37.05"))
	require.True(t, s.Next())

	res, _ := s.Result()
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, float64(67), res.Score)
}

func TestDragDrop_EndToEnd(t *testing.T) {
	s := newSession(t, catalog.SampleDragDrop)
	placements := [][2]string{
		{"react", "frontend"},
		{"htmlcss", "frontend"},
		{"nodejs", "backend"},
		{"express", "backend"},
		{"postgres", "backend"},
	}

	for _, p := range placements {
		require.NoError(t, s.Place(p[0], p[1]))
		assert.False(t, s.CanAdvance(), "items remain in the pool")
		assert.False(t, s.Complete())
	}

	snap := s.Snapshot()
	assert.Equal(t, []string{"restapi"}, snap.AvailableItems)
	assert.Equal(t, []string{"React.js", "HTML/CSS"}, snap.Zones["frontend"])

	require.NoError(t, s.Place("restapi", "backend"))
	assert.Empty(t, s.Snapshot().AvailableItems)
	assert.True(t, s.CanAdvance())
	require.True(t, s.Complete())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, float64(100), res.Score)
	assert.Equal(t, 6, res.CorrectCount)
}

func TestDragDrop_WrongZonesScorePartially(t *testing.T) {
	s := newSession(t, catalog.SampleDragDrop)
	for _, id := range []string{"react", "htmlcss", "nodejs", "express", "postgres", "restapi"} {
		require.NoError(t, s.Place(id, "frontend"))
	}
	require.True(t, s.Complete())

	res, _ := s.Result()
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, float64(33), res.Score)
}

func TestDragDrop_PlaceAndUnplace(t *testing.T) {
	s := newSession(t, catalog.SampleDragDrop)

	assert.ErrorIs(t, s.Place("react", "sidebar"), ErrUnknownZone)
	assert.ErrorIs(t, s.Place("vue", "frontend"), ErrUnknownItem)

	require.NoError(t, s.Place("react", "frontend"))
	assert.ErrorIs(t, s.Place("react", "backend"), ErrUnknownItem, "an item is consumed once placed")

	require.NoError(t, s.Place("nodejs", "backend"))
	require.NoError(t, s.Unplace("react"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"react", "htmlcss", "express", "postgres", "restapi"}, snap.AvailableItems)
	assert.Empty(t, snap.Zones["frontend"])
	assert.Equal(t, []string{"Node.js"}, snap.Zones["backend"])
	assert.ErrorIs(t, s.Unplace("react"), ErrUnknownItem)
}

func TestHotspot_ToggleAndScore(t *testing.T) {
	s := newSession(t, catalog.SampleHotspot)

	require.NoError(t, s.Toggle(0, "webserver"))
	require.NoError(t, s.Toggle(0, "database"))
	require.NoError(t, s.Toggle(0, "database"))
	snap := s.Snapshot()
	assert.Equal(t, models.MultiSelectResponse{IDs: []string{"webserver"}}, snap.Answers[0])

	require.NoError(t, s.Toggle(0, "mailrelay"))
	require.NoError(t, s.Toggle(0, "firewall"))
	require.True(t, s.Next())

	assert.False(t, s.CanAdvance())
	assert.ErrorIs(t, s.Toggle(1, "router"), ErrUnknownOption)
	require.NoError(t, s.Toggle(1, "switch"))
	require.True(t, s.Next())

	res, _ := s.Result()
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, float64(67), res.Score)
}

func TestScenario_GradeAndClamp(t *testing.T) {
	s := newSession(t, catalog.SampleScenario)
	assert.False(t, s.CanAdvance())
	assert.ErrorIs(t, s.Toggle(1, "rollback"), ErrUnknownQuestion)

	for _, id := range []string{"rollback", "communicate", "hotfix", "logs"} {
		require.NoError(t, s.Toggle(0, id))
	}
	require.True(t, s.Complete())

	res, _ := s.Result()
	assert.Equal(t, models.OutcomeGraded, res.Outcome)
	assert.Equal(t, float64(100), res.Score)
	assert.Equal(t, "A", res.Grade)
}

func TestProctored_Lifecycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	s := newSession(t, catalog.SampleProctored, WithClock(func() time.Time { return now }))

	assert.Equal(t, models.SessionNotStarted, s.Status())
	assert.ErrorIs(t, s.SelectOption(0, "Hash map"), ErrNotInProgress)
	assert.False(t, s.Complete())
	assert.False(t, s.TimerRunning())

	require.True(t, s.Begin())
	assert.False(t, s.Begin(), "begin only fires once")
	assert.True(t, s.TimerRunning())

	assert.True(t, s.CanAdvance(), "no per-question gate")
	assert.True(t, s.Next())
	require.NoError(t, s.SelectOption(1, "Read committed"))

	now = start.Add(42*time.Minute + 17*time.Second + 400*time.Millisecond)
	require.True(t, s.Complete(), "submit is allowed from any question")

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, models.OutcomeRecorded, res.Outcome)
	assert.Equal(t, 42*60+17, res.ElapsedSeconds)
	assert.False(t, s.TimerRunning())
}

func TestRestart_IsIdempotent(t *testing.T) {
	for _, a := range catalog.Samples() {
		t.Run(a.Key, func(t *testing.T) {
			s := newSession(t, a.Key)
			s.Begin()
			switch a.Kind {
			case models.KindDropdownSelection:
				require.NoError(t, s.SelectOption(0, a.Dropdown[0].CorrectAnswer))
				s.Next()
			case models.KindDragDrop:
				require.NoError(t, s.Place("react", "frontend"))
			case models.KindHotspotQuiz:
				require.NoError(t, s.Toggle(0, "firewall"))
			case models.KindProctoredExam:
				s.Complete()
			}
			s.timer.Tick()

			for i := 0; i < 2; i++ {
				require.True(t, s.Restart())
				snap := s.Snapshot()
				assert.Empty(t, snap.Answers)
				assert.Equal(t, 0, snap.CurrentIndex)
				assert.Equal(t, a.DurationSeconds, snap.TimeRemaining)
				assert.Nil(t, snap.Result)
				if a.Kind == models.KindProctoredExam {
					assert.Equal(t, models.SessionNotStarted, snap.Status)
				} else {
					assert.Equal(t, models.SessionInProgress, snap.Status)
				}
				if a.Kind == models.KindDragDrop {
					assert.Len(t, snap.AvailableItems, len(a.DragDrop.Items))
				}
			}
		})
	}
}

func TestCompleted_RejectsMutationsAndKeepsResult(t *testing.T) {
	s := newSession(t, catalog.SampleScenario)
	require.NoError(t, s.Toggle(0, "hotfix"))
	require.True(t, s.Complete())

	first, _ := s.Result()
	assert.Equal(t, float64(48), first.Score)
	assert.Equal(t, "F", first.Grade)

	assert.ErrorIs(t, s.Toggle(0, "logs"), ErrNotInProgress)
	assert.False(t, s.Next())
	assert.False(t, s.Complete())

	again, _ := s.Result()
	assert.Equal(t, first, again, "result is a snapshot")
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newSession(t, catalog.SampleDragDrop)
	require.NoError(t, s.Place("react", "frontend"))

	snap := s.Snapshot()
	snap.AvailableItems[0] = "tampered"
	snap.Zones["frontend"][0] = "tampered"

	fresh := s.Snapshot()
	assert.Equal(t, "nodejs", fresh.AvailableItems[0])
	assert.Equal(t, "React.js", fresh.Zones["frontend"][0])
}

func TestClose_RejectsEverything(t *testing.T) {
	s := newSession(t, catalog.SampleDropdown)
	s.Close()
	s.Close()

	assert.ErrorIs(t, s.SelectOption(0, "CSS"), ErrSessionClosed)
	assert.False(t, s.Restart())
	assert.False(t, s.TimerRunning())
}

func TestSession_TimerTicksWhileInProgress(t *testing.T) {
	ticks := make(chan int, 8)
	s, err := New(sample(t, catalog.SampleScenario),
		WithTickInterval(time.Millisecond),
		WithTickObserver(func(remaining int) {
			select {
			case ticks <- remaining:
			default:
			}
		}))
	require.NoError(t, err)
	defer s.Close()

	select {
	case remaining := <-ticks:
		assert.Less(t, remaining, 900)
	case <-time.After(time.Second):
		t.Fatal("timer never ticked")
	}

	require.NoError(t, s.Toggle(0, "logs"))
	require.True(t, s.Complete())
	assert.False(t, s.TimerRunning())

	frozen := s.TimeRemaining()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, s.TimeRemaining())
}
