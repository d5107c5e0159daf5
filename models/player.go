package models

import "time"

type Player struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Position    string    `json:"position" db:"position"`
	Age         int       `json:"age" db:"age"`
	Nationality string    `json:"nationality" db:"nationality"`
	GoalsSeason int       `json:"goals_season" db:"goals_season"`
	TeamID      *int      `json:"team_id" db:"team_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
