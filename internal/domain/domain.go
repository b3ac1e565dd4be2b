package domain

import "time"

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User exists solely for login. The password is stored as a bcrypt hash.
type User struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Username     string `gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role   `gorm:"column:role;type:varchar(30);not null"`
}

func (User) TableName() string {
	return "users"
}

// Claims is the identity carried by an issued access token.
type Claims struct {
	UserID   int    `json:"sub"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
