package constant

// Chat message roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleTool      = "tool"
	ChatRoleSystem    = "system"
)

// Turn response types
const (
	ResponseTypeAI            = "AI"
	ResponseTypeKeyword       = "KEYWORD"
	ResponseTypeManualHandoff = "MANUAL_HANDOFF"
	ResponseTypeSystemError   = "SYSTEM_ERROR"
)

// Usage event request types
const (
	UsageTypeAiResponse      = "AI_RESPONSE"
	UsageTypeKeywordResponse = "KEYWORD_RESPONSE"
	UsageTypeManualHandoff   = "MANUAL_HANDOFF"
	UsageTypeSystemError     = "SYSTEM_ERROR"
)

// Fixed user-visible messages. These must stay stable: the storefront widget
// matches on them to render special UI states.
const (
	MsgCreditsExhausted = "Our automated assistant is taking a short break. A member of our team will follow up with you here as soon as possible."
	MsgHandoffConfirm   = "I've asked a member of our team to join this conversation. They'll reply here shortly."
	MsgToolLoopExceeded = "I wasn't able to finish looking that up. Could you rephrase your question, or ask about something more specific?"
	MsgModelUnavailable = "Sorry, I'm having trouble answering right now. Please try again in a moment."
	MsgGenericError     = "Something went wrong on our side. Please try again."
)

// History window: how many prior turns the model sees.
const HistoryWindowTurns = 10

// Hard cap on model->tool->model iterations per turn.
const MaxToolIterations = 3

// Maximum products returned by one retrieval call.
const MaxRankedResults = 6
