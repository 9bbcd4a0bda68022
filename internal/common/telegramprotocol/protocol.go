package telegramprotocol

const (
	ParseModeHTML = "HTML"
)

type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Response is the envelope every Bot API method answers with.
type Response struct {
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
	OK          bool   `json:"ok"`
}
