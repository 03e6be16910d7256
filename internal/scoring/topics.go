package scoring

import (
	"math"
	"sort"
)

const (
	WeakTopicAccuracy   = 50.0
	StrongTopicAccuracy = 80.0
)

// TopicStat is the per-topic view of a report, used to drive review scheduling.
type TopicStat struct {
	Topic     string  `json:"topic"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Partial   int     `json:"partial"`
	Accuracy  float64 `json:"accuracy"`
	Weak      bool    `json:"weak"`
	Strong    bool    `json:"strong"`
}

// TopicPerformance groups report entries by the topic of their question. Questions
// without a topic and SUBJECTIVE questions (no automatic verdict) are left out. A
// partial answer counts as attempted but not correct. Result is sorted by topic.
func TopicPerformance(questions []Question, entries []ReportEntry) []TopicStat {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	stats := make(map[string]*TopicStat)
	for _, e := range entries {
		q, ok := byID[e.QuestionID]
		if !ok || q.Topic == "" || q.Type == Subjective {
			continue
		}
		st, ok := stats[q.Topic]
		if !ok {
			st = &TopicStat{Topic: q.Topic}
			stats[q.Topic] = st
		}
		if !e.Attempted {
			continue
		}
		st.Attempted++
		if e.IsCorrect {
			st.Correct++
		} else if e.IsPartialCorrect {
			st.Partial++
		}
	}

	out := make([]TopicStat, 0, len(stats))
	for _, st := range stats {
		st.Accuracy = percent(st.Correct, st.Attempted)
		if st.Attempted > 0 {
			st.Weak = st.Accuracy < WeakTopicAccuracy
			st.Strong = st.Accuracy >= StrongTopicAccuracy
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// PerformanceRating maps a topic accuracy percentage onto the 0..5 recall scale.
func PerformanceRating(accuracy float64) int {
	r := int(math.Round(accuracy / 20))
	return min(max(r, 0), 5)
}
