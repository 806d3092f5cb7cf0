package models

import "time"

/** --------------------ENTITIES-------------------- */
// MemberLike is a directed "source likes target" edge. The composite
// primary key is what makes duplicate edges impossible at the storage
// layer, even when two toggles race.
type MemberLike struct {
	SourceMemberID string    `gorm:"primaryKey;size:36" json:"sourceMemberId"`
	TargetMemberID string    `gorm:"primaryKey;size:36" json:"targetMemberId"`
	CreatedAt      time.Time `json:"createdAt"`

	SourceMember Member `gorm:"foreignKey:SourceMemberID" json:"-"`
	TargetMember Member `gorm:"foreignKey:TargetMemberID" json:"-"`
}

/** -------------------- DTOs -------------------- */
// Like listing directions.
const (
	LikesDirectionLiked   = "liked"   // members the caller likes
	LikesDirectionLikedBy = "likedBy" // members who like the caller
)

// LikesParams selects one side of the caller's like edges. MemberID is
// set from the token by the handler.
type LikesParams struct {
	PageNumber int    `form:"pageNumber"`
	PageSize   int    `form:"pageSize"`
	Direction  string `form:"direction"`
	SortBy     string `form:"sortBy"` // "" = edge recency, "name" = display name
	MemberID   string `form:"-"`
}

// LikedMemberResponse is a member on the other end of a like edge,
// annotated with whether they like the caller back.
type LikedMemberResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl,omitempty"`
	LikedAt     time.Time `json:"likedAt"`
	Mutual      bool      `json:"mutual"`
}
