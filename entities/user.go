package entities

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       string  `json:"bio,omitempty"`

	Timestamp
}

// Follow links a follower to the user they follow.
type Follow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`

	Timestamp
}
