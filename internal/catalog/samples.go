package catalog

import "github.com/SAP-F-2025/assessment-engine/internal/models"

// Sample keys for the built-in assessments.
const (
	SampleDropdown  = "web-fundamentals-dropdown"
	SampleDragDrop  = "web-stack-drag-drop"
	SampleEssay     = "software-design-essay"
	SampleShort     = "http-short-answer"
	SampleNumeric   = "dosage-numeric"
	SampleHotspot   = "network-diagram-hotspot"
	SampleScenario  = "incident-response-scenario"
	SampleProctored = "final-proctored-exam"
)

// Samples returns fresh copies of the built-in assessments.
func Samples() []models.Assessment {
	return []models.Assessment{
		{
			Key:             SampleDropdown,
			Title:           "Web Fundamentals",
			Description:     "Pick the correct option from each dropdown.",
			Kind:            models.KindDropdownSelection,
			DurationSeconds: 600,
			Dropdown: []models.DropdownQuestion{
				{ID: "q1", Text: "Which language styles web pages?", Options: []string{"HTML", "CSS", "SQL", "Python"}, CorrectAnswer: "CSS"},
				{ID: "q2", Text: "Which HTTP method is idempotent and used to replace a resource?", Options: []string{"POST", "PUT", "PATCH", "CONNECT"}, CorrectAnswer: "PUT"},
				{ID: "q3", Text: "Which status code means Not Found?", Options: []string{"200", "301", "404", "500"}, CorrectAnswer: "404"},
				{ID: "q4", Text: "Which tag links an external stylesheet?", Options: []string{"<script>", "<link>", "<style>", "<meta>"}, CorrectAnswer: "<link>"},
				{ID: "q5", Text: "Which storage survives a browser restart?", Options: []string{"sessionStorage", "localStorage", "memory", "cookies with no expiry"}, CorrectAnswer: "localStorage"},
			},
		},
		{
			Key:             SampleDragDrop,
			Title:           "Web Stack Layers",
			Description:     "Sort each technology into the layer it belongs to.",
			Kind:            models.KindDragDrop,
			DurationSeconds: 300,
			DragDrop: &models.DragDropExercise{
				Instructions: "Drag every item into the frontend or backend zone.",
				Items: []models.DragItem{
					{ID: "react", Text: "React.js", CorrectZone: "frontend"},
					{ID: "nodejs", Text: "Node.js", CorrectZone: "backend"},
					{ID: "htmlcss", Text: "HTML/CSS", CorrectZone: "frontend"},
					{ID: "express", Text: "Express.js", CorrectZone: "backend"},
					{ID: "postgres", Text: "PostgreSQL", CorrectZone: "backend"},
					{ID: "restapi", Text: "REST API", CorrectZone: "backend"},
				},
				Zones: []models.DropZone{
					{ID: "frontend", Label: "Frontend"},
					{ID: "backend", Label: "Backend"},
				},
			},
		},
		{
			Key:             SampleEssay,
			Title:           "Software Design Essay",
			Description:     "Write a structured argument.",
			Kind:            models.KindEssay,
			DurationSeconds: 3600,
			Essay: []models.EssayQuestion{
				{ID: "e1", Prompt: "Discuss the trade-offs between a monolith and microservices for a growing product team.", MinWords: 300, MaxWords: 800},
				{ID: "e2", Prompt: "Describe how you would introduce automated testing into a legacy codebase.", MinWords: 200, MaxWords: 600},
			},
		},
		{
			Key:             SampleShort,
			Title:           "HTTP Short Answers",
			Description:     "Answer each question in a sentence or two.",
			Kind:            models.KindShortAnswer,
			DurationSeconds: 900,
			ShortAnswer: []models.ShortAnswerQuestion{
				{ID: "s1", Text: "What does a 401 response indicate?"},
				{ID: "s2", Text: "Name one difference between HTTP/1.1 and HTTP/2."},
				{ID: "s3", Text: "What is the purpose of the Cache-Control header?"},
			},
		},
		{
			Key:             SampleNumeric,
			Title:           "Dosage Calculation",
			Description:     "Compute each value. Answers within tolerance are accepted.",
			Kind:            models.KindNumericCalculation,
			DurationSeconds: 1200,
			Numeric: []models.NumericQuestion{
				{ID: "n1", Text: "A patient weighs 69 kg and the dose is 2 mg/kg. How many mg are given?", CorrectAnswer: 138, Tolerance: 2, Unit: "mg"},
				{ID: "n2", Text: "An infusion of 1000 mL runs over 8 hours. What is the rate?", CorrectAnswer: 125, Tolerance: 1, Unit: "mL/h"},
				{ID: "n3", Text: "Convert 98.6 degrees Fahrenheit to Celsius.", CorrectAnswer: 37, Tolerance: 0.1, Unit: "°C"},
			},
		},
		{
			Key:             SampleHotspot,
			Title:           "Network Diagram",
			Description:     "Select every region that matches the question.",
			Kind:            models.KindHotspotQuiz,
			DurationSeconds: 600,
			Hotspot: []models.HotspotQuestion{
				{
					ID:       "h1",
					Text:     "Select the components that sit inside the DMZ.",
					ImageURL: "/images/network-diagram.png",
					Hotspots: []models.Hotspot{
						{ID: "firewall", Label: "Firewall", X: 12, Y: 40},
						{ID: "webserver", Label: "Web Server", X: 35, Y: 30},
						{ID: "mailrelay", Label: "Mail Relay", X: 35, Y: 60},
						{ID: "database", Label: "Database", X: 75, Y: 45},
					},
					CorrectHotspots: []string{"webserver", "mailrelay"},
				},
				{
					ID:       "h2",
					Text:     "Select the device that filters traffic between zones.",
					ImageURL: "/images/network-diagram.png",
					Hotspots: []models.Hotspot{
						{ID: "firewall", Label: "Firewall", X: 12, Y: 40},
						{ID: "switch", Label: "Switch", X: 55, Y: 50},
						{ID: "database", Label: "Database", X: 75, Y: 45},
					},
					CorrectHotspots: []string{"firewall"},
				},
			},
		},
		{
			Key:             SampleScenario,
			Title:           "Incident Response",
			Description:     "Choose the actions you would take.",
			Kind:            models.KindScenarioSimulation,
			DurationSeconds: 900,
			Scenario: &models.Scenario{
				Situation: "Customers report the checkout page is returning errors after this morning's deploy.",
				Actions: []models.ScenarioAction{
					{ID: "rollback", Label: "Roll back the deploy", Effectiveness: 70},
					{ID: "communicate", Label: "Post a status update and notify support", Effectiveness: 85},
					{ID: "hotfix", Label: "Write a hotfix directly in production", Effectiveness: 60},
					{ID: "logs", Label: "Inspect error logs and recent changes", Effectiveness: 80},
				},
			},
		},
		{
			Key:             SampleProctored,
			Title:           "Final Examination",
			Description:     "Proctored exam. Submit when you are done.",
			Kind:            models.KindProctoredExam,
			DurationSeconds: 5400,
			Proctored: []models.ProctoredQuestion{
				{ID: "p1", Text: "Which data structure gives O(1) average lookup by key?", Options: []string{"Array", "Hash map", "Linked list", "Binary heap"}},
				{ID: "p2", Text: "Which isolation level prevents dirty reads but allows non-repeatable reads?", Options: []string{"Read uncommitted", "Read committed", "Repeatable read", "Serializable"}},
				{ID: "p3", Text: "Which git command integrates changes by replaying commits?", Options: []string{"merge", "rebase", "cherry", "stash"}},
			},
		},
	}
}
