package model

import "time"

// Role is the marketplace side a profile acts on.
type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleSupplier Role = "supplier"
)

// Profile is the account record backing a session.
type Profile struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"type:varchar(200);uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"type:varchar(100);not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null"`
	Password  string    `json:"-" gorm:"type:varchar(200);not null"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
