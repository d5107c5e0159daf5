package handlers

import (
	"github.com/Dosada05/league-api/models"
)

// timestampFormat is the external representation of all entity timestamps:
// day-month-year, 24-hour clock.
const timestampFormat = "02-01-2006 15:04:05"

// PlayerView is the stable external shape of a player. Team carries the
// related team's name (denormalized), or null when the player has no team.
type PlayerView struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Age         int     `json:"age"`
	Nationality string  `json:"nationality"`
	GoalsSeason int     `json:"goals_season"`
	Team        *string `json:"team"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewPlayerView(player *models.Player) PlayerView {
	view := PlayerView{
		ID:          player.ID,
		Name:        player.Name,
		Position:    player.Position,
		Age:         player.Age,
		Nationality: player.Nationality,
		GoalsSeason: player.GoalsSeason,
		CreatedAt:   player.CreatedAt.Format(timestampFormat),
		UpdatedAt:   player.UpdatedAt.Format(timestampFormat),
	}
	if player.Team != nil {
		name := player.Team.Name
		view.Team = &name
	}
	return view
}

// NewPlayerViews preserves the iteration order of the input page.
func NewPlayerViews(players []models.Player) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for i := range players {
		views = append(views, NewPlayerView(&players[i]))
	}
	return views
}

type TeamView struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Coach     *string `json:"coach"`
	FoundedIn int     `json:"founded_in"`
	Stadium   string  `json:"stadium"`
	LogoURL   *string `json:"logo_url,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func NewTeamView(team *models.Team) TeamView {
	return TeamView{
		ID:        team.ID,
		Name:      team.Name,
		Coach:     team.Coach,
		FoundedIn: team.FoundedIn,
		Stadium:   team.Stadium,
		LogoURL:   team.LogoURL,
		CreatedAt: team.CreatedAt.Format(timestampFormat),
		UpdatedAt: team.UpdatedAt.Format(timestampFormat),
	}
}

func NewTeamViews(teams []models.Team) []TeamView {
	views := make([]TeamView, 0, len(teams))
	for i := range teams {
		views = append(views, NewTeamView(&teams[i]))
	}
	return views
}
