package models

import "time"

// User represents a registered player.
// The password hash never leaves the server: it is excluded from JSON and
// handlers expose users through dedicated response DTOs anyway.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Pseudo             string    `gorm:"size:25;uniqueIndex;not null" json:"pseudo"`
	Firstname          string    `gorm:"size:255;not null" json:"firstname"`
	Lastname           string    `gorm:"size:255;not null" json:"lastname"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"column:hash_password;size:255;not null" json:"-"`
	BirthdayDate       time.Time `gorm:"column:birthday_date" json:"birthday_date"`
	Phone              int64     `json:"phone"`
	Picture            string    `gorm:"size:255" json:"picture"`
	Wallet             float64   `json:"wallet"`
	PlaystationAccount string    `gorm:"size:200" json:"playstation_account"`
	XboxAccount        string    `gorm:"size:200" json:"xbox_account"`
	NintendoAccount    string    `gorm:"size:200" json:"nintendo_account"`
	SteamAccount       string    `gorm:"size:200" json:"steam_account"`
	IsAdmin            int       `gorm:"default:0" json:"is_admin"`
	Country            string    `gorm:"size:100" json:"country"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName keeps the platform's historical table name.
func (User) TableName() string { return "utilisateurs" }
