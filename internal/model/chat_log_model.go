package model

import "time"

type ChatLog struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	SessionId   int64     `gorm:"not null;index"`
	UserMessage string    `gorm:"type:text;not null"`
	BotResponse string    `gorm:"type:text;not null"`
	Timestamp   time.Time `gorm:"autoCreateTime;index"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
