package ai

// Prompts are Vietnamese; the frontend and its users are.

// AnalystSystemPrompt sets the model persona for task analysis.
const AnalystSystemPrompt = "Bạn là trợ lý chuyên phân tích tasks và năng suất."

// analysisPromptHeader asks for a short summary, exactly three concrete
// suggestions and a working-hours window. The task list follows "Danh sách:".
const analysisPromptHeader = `Bạn là một trợ lý năng suất. Dưới đây là danh sách tasks. Hãy:
- Tóm tắt các điểm chính (1-2 câu).
- Đưa ra 3 gợi ý cải thiện năng suất (cụ thể).
- Gợi ý khung thời gian học/làm hiệu quả (ví dụ 20:00-22:00).
Danh sách:
`

// Labels and placeholders used when rendering task lines.
const (
	LabelDone       = "Hoàn thành"
	LabelNotDone    = "Chưa xong"
	NoTitle         = "(no title)"
	NoDeadline      = "no-deadline"
	DefaultPriority = "medium"
)

// NoResponse replaces the analysis when the model returned no content.
const NoResponse = "Không có phản hồi từ AI."
