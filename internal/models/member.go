package models

import "time"

/** --------------------ENTITIES-------------------- */
// Member represents a registered member profile. The id doubles as the
// identity key the auth token carries in its subject claim.
type Member struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	DisplayName string `gorm:"size:100;not null" json:"displayName"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	City        string `gorm:"size:100" json:"city,omitempty"`
	Country     string `gorm:"size:100" json:"country,omitempty"`
	// ImageURL points at the member's main photo on the image host.
	ImageURL  string    `gorm:"size:512" json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Photos []Photo `gorm:"foreignKey:MemberID" json:"-"`
}

/** -------------------- DTOs -------------------- */
// Request
type MemberUpdateRequest struct {
	DisplayName *string `json:"displayName,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Country     *string `json:"country,omitempty" binding:"omitempty,max=100"`
}

// MemberParams filters the paginated member listing. CurrentMemberID is
// set from the token by the handler, never by the client.
type MemberParams struct {
	PageNumber      int    `form:"pageNumber"`
	PageSize        int    `form:"pageSize"`
	CurrentMemberID string `form:"-"`
}

// Response
type MemberResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Description: m.Description,
		City:        m.City,
		Country:     m.Country,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}
