package mentorship

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/domain/user"
)

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type MentorProfile struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;uniqueIndex;column:user_id" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Bio       *string    `gorm:"type:text;column:bio" json:"bio"`
	Expertise *string    `gorm:"size:255;column:expertise" json:"expertise"`
}

func (MentorProfile) TableName() string { return "mentor_profiles" }

type MentorshipRequest struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;index;column:user_id" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MentorID  int64      `gorm:"not null;index;column:mentor_id" json:"mentor_id"`
	Mentor    *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:MentorID;references:ID" json:"-"`
	Status    string     `gorm:"not null;size:20;default:'pending';column:status" json:"status"`
	Message   *string    `gorm:"type:text;column:message" json:"message"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (MentorshipRequest) TableName() string { return "mentorship_requests" }

// IsResolution reports whether status is a valid answer to a pending request.
func IsResolution(status string) bool {
	return status == RequestAccepted || status == RequestRejected
}
