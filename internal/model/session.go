package model

import "time"

// SessionStage is the position of a session in the form flow
type SessionStage string

const (
	StageInitial   SessionStage = "initial"   // base questions only
	StageExpanded  SessionStage = "expanded"  // follow-ups appended, awaiting answers
	StageCompleted SessionStage = "completed" // report produced
)

// Session is one client's pass through the form. It lives in Redis only.
type Session struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId,omitempty"`
	Stage     SessionStage        `json:"stage"`
	Questions []Question          `json:"questions"`
	Answers   ProductData         `json:"answers"`
	Report    *TransparencyReport `json:"report,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// MissingRequired returns ids of required questions without an answer
func (s *Session) MissingRequired() []string {
	var missing []string
	for _, q := range s.Questions {
		if !q.Required {
			continue
		}
		if !answered(s.Answers, q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func answered(p ProductData, id string) bool {
	if !p.Has(id) {
		return false
	}
	switch v := p.Value(id).(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	}
	return true
}

// SaveAnswersRequest is the request body for merging answers into a session
type SaveAnswersRequest struct {
	Answers ProductData `json:"answers"`
}

// SessionEvent is pushed to session subscribers over WebSocket
type SessionEvent struct {
	SessionID string       `json:"sessionId"`
	Stage     SessionStage `json:"stage"`
	Questions []Question   `json:"questions,omitempty"`
	Score     *int         `json:"score,omitempty"`
}
