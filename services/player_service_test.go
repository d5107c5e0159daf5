package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func seedTeam(repo *fakeTeamRepo, name string) int {
	team := &models.Team{Name: name, FoundedIn: 1900, Stadium: "Arena"}
	_ = repo.Create(context.Background(), team)
	return team.ID
}

func TestPlayerServiceListDefaultsPage(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	svc := NewPlayerService(playerRepo, newFakeTeamRepo(), nil)

	page, err := svc.List(context.Background(), ListPlayersFilter{})
	require.NoError(t, err)

	assert.Equal(t, 10, playerRepo.lastFilter.Limit)
	assert.Equal(t, 0, playerRepo.lastFilter.Offset)
	assert.Equal(t, 1, page.CurrentPage)
	assert.NotNil(t, page.Players)
}

func TestPlayerServiceListPageBounds(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	playerRepo.total = 42
	svc := NewPlayerService(playerRepo, newFakeTeamRepo(), nil)

	page, err := svc.List(context.Background(), ListPlayersFilter{
		Position: strPtr("Forward"),
		Page:     Page{Number: 3, PerPage: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, playerRepo.lastFilter.Limit)
	assert.Equal(t, 10, playerRepo.lastFilter.Offset)
	require.NotNil(t, playerRepo.lastFilter.Position)
	assert.Equal(t, "Forward", *playerRepo.lastFilter.Position)

	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 3, page.CurrentPage)
}

func TestPlayerServiceCreate(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	teamRepo := newFakeTeamRepo()
	publisher := &fakePublisher{}
	teamID := seedTeam(teamRepo, "FC X")

	svc := NewPlayerService(playerRepo, teamRepo, publisher)

	player, err := svc.Create(context.Background(), CreatePlayerInput{
		Name:        "New Player",
		Position:    "Forward",
		Age:         intPtr(25),
		Nationality: "Spanish",
		GoalsSeason: intPtr(0),
		TeamID:      &teamID,
	})
	require.NoError(t, err)

	assert.NotZero(t, player.ID)
	assert.Equal(t, 0, player.GoalsSeason)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventPlayerCreated, publisher.events[0].Type)
}

func TestPlayerServiceCreateValidation(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), newFakeTeamRepo(), nil)

	_, err := svc.Create(context.Background(), CreatePlayerInput{
		Age: intPtr(150),
	})
	require.Error(t, err)

	var fields validation.Errors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "position")
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "nationality")
	assert.Contains(t, fields, "goals_season")
}

func TestPlayerServiceCreateUnknownTeam(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), newFakeTeamRepo(), nil)

	_, err := svc.Create(context.Background(), CreatePlayerInput{
		Name:        "New Player",
		Position:    "Forward",
		Age:         intPtr(25),
		Nationality: "Spanish",
		GoalsSeason: intPtr(10),
		TeamID:      intPtr(999),
	})
	require.Error(t, err)

	var fields validation.Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "The selected team_id is invalid", fields["team_id"])
}

func TestPlayerServiceUpdatePartial(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	teamRepo := newFakeTeamRepo()
	publisher := &fakePublisher{}
	teamID := seedTeam(teamRepo, "FC X")

	svc := NewPlayerService(playerRepo, teamRepo, publisher)
	created, err := svc.Create(context.Background(), CreatePlayerInput{
		Name:        "New Player",
		Position:    "Forward",
		Age:         intPtr(25),
		Nationality: "Spanish",
		GoalsSeason: intPtr(10),
		TeamID:      &teamID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdatePlayerInput{
		GoalsSeason: intPtr(15),
	})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, "New Player", updated.Name)
	assert.Equal(t, 15, updated.GoalsSeason)
	assert.Equal(t, &teamID, updated.TeamID)

	last := publisher.events[len(publisher.events)-1]
	assert.Equal(t, EventPlayerUpdated, last.Type)
}

func TestPlayerServiceUpdateNotFound(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), newFakeTeamRepo(), nil)

	_, err := svc.Update(context.Background(), 999, UpdatePlayerInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerServiceDelete(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	publisher := &fakePublisher{}
	svc := NewPlayerService(playerRepo, newFakeTeamRepo(), publisher)

	player := &models.Player{Name: "New Player", Position: "Forward", Age: 25, Nationality: "Spanish"}
	require.NoError(t, playerRepo.Create(context.Background(), player))

	require.NoError(t, svc.Delete(context.Background(), player.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), player.ID), ErrPlayerNotFound)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventPlayerDeleted, publisher.events[0].Type)
	assert.Equal(t, map[string]int{"id": player.ID}, publisher.events[0].Payload)
}
