package scoring

// SectionScore is the sub-score of one test section.
type SectionScore struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	MaxMarks    float64 `json:"maxMarks"`
	Correct     int     `json:"correct"`
	Wrong       int     `json:"wrong"`
	Unattempted int     `json:"unattempted"`
	Accuracy    float64 `json:"accuracy"`
}

// ScoreSections regroups a detailed report by section. A partially-correct entry is
// attempted and not correct, so it counts as wrong here. Section scores are not
// clamped.
func ScoreSections(sections []Section, entries []ReportEntry) []SectionScore {
	out := make([]SectionScore, 0, len(sections))
	for _, s := range sections {
		ids := make(map[string]struct{}, len(s.QuestionIDs))
		for _, id := range s.QuestionIDs {
			ids[id] = struct{}{}
		}

		ss := SectionScore{Name: s.Name, MaxMarks: s.MaxMarks}
		for _, e := range entries {
			if _, ok := ids[e.QuestionID]; !ok {
				continue
			}
			ss.Score += e.MarksAwarded
			switch {
			case e.IsCorrect:
				ss.Correct++
			case !e.Attempted:
				ss.Unattempted++
			default:
				ss.Wrong++
			}
		}
		ss.Accuracy = percent(ss.Correct, ss.Correct+ss.Wrong)
		out = append(out, ss)
	}
	return out
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
