package dto

import "time"

type AskRequest struct {
	SessionId int64  `json:"session_id"`
	Question  string `json:"question" validate:"required"`
}

type AskResponse struct {
	Answer    string `json:"answer"`
	SessionId *int64 `json:"session_id,omitempty"`
}

type ChatLogResponse struct {
	Id          int64     `json:"id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}
