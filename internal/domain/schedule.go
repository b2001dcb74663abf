package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Metadata keys the generator may place alongside day entries. Every other
// top-level key is a day label.
const (
	KeyWarning       = "warning"
	KeyTips          = "tips"
	KeyMinimumNeeded = "minimum_needed"
)

// StudyTask is one topic/hours pairing within a day.
type StudyTask struct {
	Topic string  `json:"topic"`
	Hours float64 `json:"hours"`
}

type DayAllocation struct {
	Label string
	Tasks []StudyTask
}

// Hours sums the hours of every task in the day.
func (d DayAllocation) Hours() float64 {
	var total float64
	for _, t := range d.Tasks {
		total += t.Hours
	}
	return total
}

// MinimumNeeded is the generator's estimate of the budget the topics require.
type MinimumNeeded struct {
	Days       int     `json:"days"`
	DailyHours float64 `json:"daily_hours"`
}

// Schedule is a day-by-day study plan. Days keep the order the generator
// produced them in. Warning, MinimumNeeded and Tips are metadata and never
// count as days.
type Schedule struct {
	Days          []DayAllocation
	Warning       string
	MinimumNeeded *MinimumNeeded
	Tips          []string
}

func (s *Schedule) DayCount() int {
	if s == nil {
		return 0
	}
	return len(s.Days)
}

// TotalHours sums hours across all days.
func (s *Schedule) TotalHours() float64 {
	if s == nil {
		return 0
	}
	var total float64
	for _, d := range s.Days {
		total += d.Hours()
	}
	return total
}

// Day looks a day up by label.
func (s *Schedule) Day(label string) (DayAllocation, bool) {
	for _, d := range s.Days {
		if d.Label == label {
			return d, true
		}
	}
	return DayAllocation{}, false
}

// WithoutMetadata returns a copy holding only the days.
func (s *Schedule) WithoutMetadata() *Schedule {
	return &Schedule{Days: s.Days}
}

// MarshalJSON writes the schedule as a single object with day labels in order,
// followed by any metadata keys.
func (s Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(key string, value any) error {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}

	for _, d := range s.Days {
		tasks := d.Tasks
		if tasks == nil {
			tasks = []StudyTask{}
		}
		if err := writeKey(d.Label, tasks); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", d.Label, err)
		}
	}
	if s.Warning != "" {
		if err := writeKey(KeyWarning, s.Warning); err != nil {
			return nil, err
		}
	}
	if s.MinimumNeeded != nil {
		if err := writeKey(KeyMinimumNeeded, s.MinimumNeeded); err != nil {
			return nil, err
		}
	}
	if len(s.Tips) > 0 {
		if err := writeKey(KeyTips, s.Tips); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the generator's object form: "Day N" keys mapped to task
// lists, mixed with optional metadata keys. Key order is preserved. A day whose
// value is not a list of tasks is an error. A repeated day label replaces the
// earlier tasks but keeps its position.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading schedule: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schedule must be a JSON object")
	}

	out := Schedule{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading schedule key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading value of %q: %w", key, err)
		}

		switch strings.ToLower(strings.TrimSpace(key)) {
		case KeyWarning:
			if err := decodeWarning(raw, &out.Warning); err != nil {
				return err
			}
			continue
		case KeyTips:
			out.Tips = decodeTips(raw)
			continue
		case KeyMinimumNeeded:
			out.MinimumNeeded = decodeMinimumNeeded(raw)
			continue
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return fmt.Errorf("day %q is not a list of tasks", key)
		}
		var tasks []StudyTask
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return fmt.Errorf("day %q: %w", key, err)
		}
		if i, dup := index[key]; dup {
			out.Days[i].Tasks = tasks
			continue
		}
		index[key] = len(out.Days)
		out.Days = append(out.Days, DayAllocation{Label: key, Tasks: tasks})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading schedule end: %w", err)
	}

	*s = out
	return nil
}

// decodeTips accepts a list or a single string. List entries that are not
// strings keep their literal form. Anything else is dropped.
func decodeTips(raw json.RawMessage) []string {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one = strings.TrimSpace(one); one != "" {
			return []string{one}
		}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var tips []string
	for _, item := range items {
		var tip string
		if err := json.Unmarshal(item, &tip); err != nil {
			tip = string(bytes.TrimSpace(item))
		}
		if tip = strings.TrimSpace(tip); tip != "" && tip != "null" {
			tips = append(tips, tip)
		}
	}
	return tips
}

// decodeMinimumNeeded reads {"days": X, "daily_hours": Y}. Fractional days
// round up. An estimate that does not decode, or has no positive value, is
// dropped.
func decodeMinimumNeeded(raw json.RawMessage) *MinimumNeeded {
	var v struct {
		Days       *float64 `json:"days"`
		DailyHours *float64 `json:"daily_hours"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	var mn MinimumNeeded
	if v.Days != nil && *v.Days > 0 {
		mn.Days = int(math.Ceil(*v.Days))
	}
	if v.DailyHours != nil && *v.DailyHours > 0 {
		mn.DailyHours = *v.DailyHours
	}
	if mn.Days == 0 && mn.DailyHours == 0 {
		return nil
	}
	return &mn
}

// decodeWarning accepts a string or null. Other JSON values are kept in their
// literal form so the user still sees them.
func decodeWarning(raw json.RawMessage, dst *string) error {
	var w *string
	if err := json.Unmarshal(raw, &w); err == nil {
		if w != nil {
			*dst = strings.TrimSpace(*w)
		}
		return nil
	}
	*dst = strings.TrimSpace(string(raw))
	return nil
}
