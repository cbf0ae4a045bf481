package entity

import "time"

type ChatSession struct {
	Id          int64
	UserId      int64
	SessionName string
	CreatedAt   time.Time
}

type ChatLog struct {
	Id          int64
	SessionId   int64
	UserMessage string
	BotResponse string
	Timestamp   time.Time
}
