package models

/** --------------------ENTITIES-------------------- */
// Photo is one image owned by a member. PublicID is the object name on
// the image host, needed to remove the file again on delete.
type Photo struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	URL      string `gorm:"size:512;not null" json:"url"`
	PublicID string `gorm:"size:255" json:"-"`
	MemberID string `gorm:"size:36;index;not null" json:"memberId"`
}
