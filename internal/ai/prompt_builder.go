package ai

import "strings"

// BuildTaskLine renders one task as
//
//	- <title> | <status> | Priority: <priority> | Deadline: <deadline>
//
// nil fields fall back to their placeholders. Empty strings are kept as is.
func BuildTaskLine(title *string, completed bool, priority, dueDate *string) string {
	t := NoTitle
	if title != nil {
		t = *title
	}

	status := LabelNotDone
	if completed {
		status = LabelDone
	}

	p := DefaultPriority
	if priority != nil {
		p = *priority
	}

	due := NoDeadline
	if dueDate != nil {
		due = *dueDate
	}

	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(t)
	b.WriteString(" | ")
	b.WriteString(status)
	b.WriteString(" | Priority: ")
	b.WriteString(p)
	b.WriteString(" | Deadline: ")
	b.WriteString(due)
	return b.String()
}

// BuildAnalysisPrompt embeds the rendered task lines, in order, into the
// fixed instruction text.
func BuildAnalysisPrompt(lines []string) string {
	var b strings.Builder
	b.WriteString(analysisPromptHeader)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	return b.String()
}
