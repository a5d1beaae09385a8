package occupancy

import "fmt"

// FrameSummary counts zone statuses for one frame.
type FrameSummary struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Empty     int `json:"empty"`
}

// Total is the number of zones the summary was built from.
func (s FrameSummary) Total() int {
	return s.Correct + s.Incorrect + s.Empty
}

// Lines renders the summary as overlay text.
func (s FrameSummary) Lines() []string {
	return []string{
		fmt.Sprintf("Correct: %d", s.Correct),
		fmt.Sprintf("Incorrect: %d", s.Incorrect),
		fmt.Sprintf("Empty: %d", s.Empty),
	}
}

// Summarize folds zone results into counts.
func Summarize(results []ZoneResult) FrameSummary {
	var s FrameSummary
	for _, r := range results {
		switch r.Status {
		case StatusCorrect:
			s.Correct++
		case StatusIncorrect:
			s.Incorrect++
		case StatusEmpty:
			s.Empty++
		}
	}
	return s
}
