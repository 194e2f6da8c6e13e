// Package export renders completed session results as XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/scoring"
)

const (
	SummarySheet = "Result"
	AnswersSheet = "Answers"

	timeLayout = "2006-01-02 15:04:05"
)

var ErrNoResult = errors.New("session has no result to export")

// ResultWorkbook builds a two-sheet workbook: a field/value summary and one
// row per question (or per item for drag-and-drop).
func ResultWorkbook(def *models.Assessment, state models.State) ([]byte, error) {
	if state.Result == nil {
		return nil, ErrNoResult
	}
	res := state.Result

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed rather than left empty.
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Session", state.SessionID},
		{"Assessment", def.Title},
		{"Assessment Key", def.Key},
		{"Kind", string(def.Kind)},
		{"Outcome", string(res.Outcome)},
		{"Score", res.Score},
		{"Grade", res.Grade},
		{"Correct", res.CorrectCount},
		{"Total", res.TotalCount},
		{"Elapsed (seconds)", res.ElapsedSeconds},
		{"Completed At", res.CompletedAt.Format(timeLayout)},
	}
	if state.StartedAt != nil {
		summary = append(summary, []interface{}{"Started At", state.StartedAt.Format(timeLayout)})
	}
	if err := writeRows(f, SummarySheet, nil, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	headers, rows := answerRows(def, state)
	if err := writeRows(f, AnswersSheet, headers, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	offset := 1
	if headers != nil {
		for i, header := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return err
			}
		}
		offset = 2
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+offset)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func answerRows(def *models.Assessment, state models.State) ([]string, [][]interface{}) {
	answers := state.Answers
	var rows [][]interface{}

	switch def.Kind {
	case models.KindDropdownSelection:
		for i, q := range def.Dropdown {
			choice, _ := answers[i].(models.ChoiceResponse)
			rows = append(rows, []interface{}{i + 1, q.Text, choice.Option, q.CorrectAnswer, yesNo(choice.Option == q.CorrectAnswer)})
		}
		return []string{"#", "Question", "Answer", "Expected", "Correct"}, rows

	case models.KindNumericCalculation:
		for i, q := range def.Numeric {
			num, _ := answers[i].(models.NumericResponse)
			expected := fmt.Sprintf("%g ± %g %s", q.CorrectAnswer, q.Tolerance, q.Unit)
			rows = append(rows, []interface{}{i + 1, q.Text, num.Raw, strings.TrimSpace(expected), yesNo(scoring.NumericCorrect(q, num.Raw))})
		}
		return []string{"#", "Question", "Answer", "Expected", "Correct"}, rows

	case models.KindHotspotQuiz:
		for i, q := range def.Hotspot {
			sel, _ := answers[i].(models.MultiSelectResponse)
			hits := 0
			for _, id := range q.CorrectHotspots {
				if sel.Contains(id) {
					hits++
				}
			}
			rows = append(rows, []interface{}{i + 1, q.Text, strings.Join(sel.IDs, ", "), strings.Join(q.CorrectHotspots, ", "), fmt.Sprintf("%d/%d", hits, len(q.CorrectHotspots))})
		}
		return []string{"#", "Question", "Selected", "Expected", "Hits"}, rows

	case models.KindDragDrop:
		for i, item := range def.DragDrop.Items {
			placed := zoneOf(def.DragDrop.Zones, state.Zones, item.Text)
			rows = append(rows, []interface{}{i + 1, item.Text, placed, item.CorrectZone, yesNo(placed == item.CorrectZone)})
		}
		return []string{"#", "Item", "Placed In", "Expected", "Correct"}, rows

	case models.KindScenarioSimulation:
		sel, _ := answers[0].(models.MultiSelectResponse)
		for i, a := range def.Scenario.Actions {
			rows = append(rows, []interface{}{i + 1, a.Label, a.Effectiveness, yesNo(sel.Contains(a.ID))})
		}
		return []string{"#", "Action", "Effectiveness", "Selected"}, rows

	case models.KindEssay:
		for i, q := range def.Essay {
			text, _ := answers[i].(models.TextResponse)
			rows = append(rows, []interface{}{i + 1, q.Prompt, text.Text, scoring.WordCount(text.Text)})
		}
		return []string{"#", "Prompt", "Answer", "Words"}, rows

	case models.KindShortAnswer:
		for i, q := range def.ShortAnswer {
			text, _ := answers[i].(models.TextResponse)
			rows = append(rows, []interface{}{i + 1, q.Text, text.Text})
		}
		return []string{"#", "Question", "Answer"}, rows

	case models.KindProctoredExam:
		for i, q := range def.Proctored {
			choice, _ := answers[i].(models.ChoiceResponse)
			rows = append(rows, []interface{}{i + 1, q.Text, choice.Option})
		}
		return []string{"#", "Question", "Answer"}, rows
	}
	return []string{"#"}, nil
}

// zoneOf finds the zone holding text, scanning zones in definition order.
func zoneOf(order []models.DropZone, zones map[string][]string, text string) string {
	for _, zone := range order {
		for _, t := range zones[zone.ID] {
			if t == text {
				return zone.ID
			}
		}
	}
	return ""
}

func yesNo(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}
