package domain

import (
	"time"
)

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Email     string    `gorm:"type:text"`
	Subject   string    `gorm:"type:text;not null;default:'No Subject'"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"index:idx_messages_timestamp;not null"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message.
func (m *MessageModel) ToDomain() Message {
	return Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Timestamp: m.Timestamp.UTC(),
	}
}

// MessageToModel converts domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	return &MessageModel{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Timestamp: msg.Timestamp,
	}
}
