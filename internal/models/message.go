package models

import "time"

/** --------------------ENTITIES-------------------- */
// Message is a direct message between two members. Each side can hide
// its own view with the deleted flags; the row is physically removed
// once both sides have hidden it. See HideFor.
type Message struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	SenderID         string     `gorm:"size:36;index;not null" json:"senderId"`
	RecipientID      string     `gorm:"size:36;index;not null" json:"recipientId"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	DateRead         *time.Time `json:"dateRead,omitempty"`
	SenderDeleted    bool       `gorm:"not null;default:false" json:"-"`
	RecipientDeleted bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`

	Sender    Member `gorm:"foreignKey:SenderID" json:"-"`
	Recipient Member `gorm:"foreignKey:RecipientID" json:"-"`
}

// HideFor advances the delete state machine for the given member. The
// states are: active, hidden-for-sender, hidden-for-recipient, and
// hidden-for-both. Flags only ever move false->true. purge reports that
// the message reached the terminal state and must be removed from the
// store; ok is false when memberID holds neither role, in which case
// nothing changed.
func (m *Message) HideFor(memberID string) (purge bool, ok bool) {
	if memberID != m.SenderID && memberID != m.RecipientID {
		return false, false
	}
	if memberID == m.SenderID {
		m.SenderDeleted = true
	}
	if memberID == m.RecipientID {
		m.RecipientDeleted = true
	}
	return m.SenderDeleted && m.RecipientDeleted, true
}

// HiddenFor reports whether the given member has deleted their side.
func (m *Message) HiddenFor(memberID string) bool {
	return (memberID == m.SenderID && m.SenderDeleted) ||
		(memberID == m.RecipientID && m.RecipientDeleted)
}

/** -------------------- DTOs -------------------- */
// Request
type CreateMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required,min=1"`
}

// Message containers (mailbox views).
const (
	ContainerInbox  = "inbox"
	ContainerOutbox = "outbox"
	ContainerUnread = "unread"
)

// MessageParams selects a container listing for one member. MemberID is
// set from the token by the handler.
type MessageParams struct {
	PageNumber int    `form:"pageNumber"`
	PageSize   int    `form:"pageSize"`
	Container  string `form:"container"`
	MemberID   string `form:"-"`
}

// Response
type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Content     string     `json:"content"`
	DateRead    *time.Time `json:"dateRead,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		DateRead:    m.DateRead,
		CreatedAt:   m.CreatedAt,
	}
}
