package scoring

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Answer is a learner's raw answer value: a string, a list of strings, a number, or
// null. The raw JSON is kept as submitted so the report can echo it back; typed views
// are parsed on demand and never fail loudly.
type Answer struct {
	raw json.RawMessage
}

// SubmittedAnswer is one (questionId, answer, timeTaken) tuple of an attempt.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     Answer `json:"answer"`
	TimeTaken  int    `json:"timeTaken"`
}

func NewTextAnswer(s string) Answer {
	b, _ := json.Marshal(s)
	return Answer{raw: b}
}

func NewListAnswer(items ...string) Answer {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return Answer{raw: b}
}

func NewNumberAnswer(v float64) Answer {
	return Answer{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// RawAnswer wraps an arbitrary JSON value.
func RawAnswer(raw json.RawMessage) Answer {
	var a Answer
	_ = a.UnmarshalJSON(raw)
	return a
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		a.raw = nil
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		// keep it; it grades as malformed
		a.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	}
	a.raw = buf.Bytes()
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if len(a.raw) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(a.raw) {
		return json.Marshal(string(a.raw))
	}
	return a.raw, nil
}

// IsEmpty reports whether the answer counts as unattempted: null, absent, a blank
// string, or an empty list.
func (a Answer) IsEmpty() bool {
	if len(a.raw) == 0 {
		return true
	}
	switch a.raw[0] {
	case '"':
		var s string
		if json.Unmarshal(a.raw, &s) == nil {
			return strings.TrimSpace(s) == ""
		}
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(a.raw, &items) == nil {
			return len(items) == 0
		}
	}
	return false
}

// Text returns the answer as a single string. A one-element string list is accepted;
// numbers are rendered in their shortest form.
func (a Answer) Text() (string, bool) {
	if len(a.raw) == 0 {
		return "", false
	}
	var s string
	if json.Unmarshal(a.raw, &s) == nil {
		return s, true
	}
	var list []string
	if json.Unmarshal(a.raw, &list) == nil && len(list) == 1 {
		return list[0], true
	}
	var n json.Number
	if json.Unmarshal(a.raw, &n) == nil {
		return n.String(), true
	}
	return "", false
}

// Options returns the answer as a list of option strings. A string is split on commas.
func (a Answer) Options() ([]string, bool) {
	if len(a.raw) == 0 {
		return nil, false
	}
	var list []string
	if json.Unmarshal(a.raw, &list) == nil {
		return list, true
	}
	var s string
	if json.Unmarshal(a.raw, &s) == nil {
		return strings.Split(s, ","), true
	}
	return nil, false
}

// Number returns the answer as a float. Numeric strings are parsed.
func (a Answer) Number() (float64, bool) {
	if len(a.raw) == 0 {
		return 0, false
	}
	var f float64
	if json.Unmarshal(a.raw, &f) == nil {
		return f, true
	}
	s, ok := a.Text()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the answer as an exact integer. Fractional values fail.
func (a Answer) Int() (int64, bool) {
	s, ok := a.Text()
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func normalizeOption(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func optionSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if o := normalizeOption(it); o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}

func sortedOptions(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}
