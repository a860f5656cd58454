package models

import "time"

// Lobby is a scheduled or recorded match between two users on a
// game/console pairing, with a wagered price and both scores.
// The user and game-console references are bare numeric ids; no foreign
// key is enforced at this level.
type Lobby struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Price         float64   `json:"price"`
	IDUserLocal   uint      `gorm:"column:id_user_local" json:"id_user_local"`
	IDUserAway    uint      `gorm:"column:id_user_away" json:"id_user_away"`
	IDGameConsole uint      `gorm:"column:id_game_console" json:"id_game_console"`
	ScoreLocal    int       `gorm:"column:score_local" json:"score_local"`
	ScoreAway     int       `gorm:"column:score_away" json:"score_away"`
	Date          string    `gorm:"size:255" json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the platform's historical table name.
func (Lobby) TableName() string { return "lobbies" }
