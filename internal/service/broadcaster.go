package service

// Session event types pushed over WebSocket
const (
	EventQuestionsExpanded = "questions_expanded"
	EventReportReady       = "report_ready"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}
