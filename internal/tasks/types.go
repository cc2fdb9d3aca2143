package tasks

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Task is one caller-supplied to-do item. Every field is optional; nil
// pointers mean "absent" and are rendered with placeholders.
type Task struct {
	Title     *string `json:"title,omitempty"`
	Completed bool    `json:"completed,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Priority  *string `json:"priority,omitempty"`

	// null marks a JSON null list element; it cannot be rendered.
	null bool
}

// UnmarshalJSON is lenient: null fields count as absent, non-string values in
// text fields are rendered as text, completed follows truthiness, and an
// element that is not an object decodes to an empty Task. A null element is
// kept and rejected when the prompt is built.
func (t *Task) UnmarshalJSON(data []byte) error {
	*t = Task{}

	if isAbsent(data) {
		t.null = true
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	t.Title = textField(fields["title"])
	t.DueDate = textField(fields["dueDate"])
	t.Priority = textField(fields["priority"])
	t.Completed = truthy(fields["completed"])
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}

func textField(raw json.RawMessage) *string {
	if isAbsent(raw) {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		s := string(bytes.TrimSpace(raw))
		return &s
	}
	s := displayString(v)
	return &s
}

// displayString renders a decoded JSON value the way string interpolation
// in the web client does: numbers in shortest form, arrays comma-joined with
// null elements empty, objects as "[object Object]".
func displayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = displayString(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	// exponent form: 1e-07 -> 1e-7, 1e+21 stays
	s := strconv.FormatFloat(n, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

func truthy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	v := bytes.TrimSpace(raw)
	switch v[0] {
	case 't':
		return true
	case 'f':
		return false
	case '"':
		var s string
		_ = json.Unmarshal(v, &s)
		return s != ""
	case '{', '[':
		return true
	default:
		n, err := strconv.ParseFloat(string(v), 64)
		return err == nil && n != 0
	}
}

type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
