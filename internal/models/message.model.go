package models

import (
	"bytes"

	"github.com/google/uuid"
)

type Conversation struct {
	BaseUUIDModel
	FirstUserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair" json:"firstUserId"`
	SecondUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair" json:"secondUserId"`
	FirstUser    *User     `gorm:"foreignKey:FirstUserID"                                 json:"firstUser,omitempty"`
	SecondUser   *User     `gorm:"foreignKey:SecondUserID"                                json:"secondUser,omitempty"`
	Messages     []Message `gorm:"foreignKey:ConversationID"                              json:"messages,omitempty"`
}

// OrderedPair returns the two ids in the canonical order stored on a Conversation,
// so (a, b) and (b, a) address the same row.
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

func (c *Conversation) OtherParty(userID uuid.UUID) uuid.UUID {
	if c.FirstUserID == userID {
		return c.SecondUserID
	}
	return c.FirstUserID
}

type Message struct {
	BaseUUIDModel
	ConversationID uuid.UUID     `gorm:"type:uuid;not null;index"           json:"conversationId"`
	SenderID       uuid.UUID     `gorm:"type:uuid;not null;index"           json:"senderId"`
	RecipientID    uuid.UUID     `gorm:"type:uuid;not null;index"           json:"recipientId"`
	Message        string        `gorm:"type:text;not null"                 json:"message"`
	Status         MessageStatus `gorm:"type:text;not null;default:sent"    json:"status"`
}

// ConversationSummary is a conversation with its most recent message.
type ConversationSummary struct {
	Conversation
	LastMessage *Message `json:"lastMessage,omitempty"`
}
