package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/validation"
	"golang.org/x/sync/errgroup"
)

type PlayerService interface {
	List(ctx context.Context, filter ListPlayersFilter) (*PlayerPage, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

// ListPlayersFilter carries the optional narrowing criteria plus the page
// bounds. Nil criteria impose no predicate.
type ListPlayersFilter struct {
	Position *string
	Name     *string
	TeamID   *int
	Page     Page
}

type PlayerPage struct {
	Players     []models.Player
	Total       int
	CurrentPage int
}

type CreatePlayerInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Position    string `json:"position" validate:"required,max=255"`
	Age         *int   `json:"age" validate:"required,gt=0,lte=99"`
	Nationality string `json:"nationality" validate:"required,max=255"`
	GoalsSeason *int   `json:"goals_season" validate:"required,gte=0"`
	TeamID      *int   `json:"team_id" validate:"omitempty,gt=0"`
}

type UpdatePlayerInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Position    *string `json:"position" validate:"omitempty,min=1,max=255"`
	Age         *int    `json:"age" validate:"omitempty,gt=0,lte=99"`
	Nationality *string `json:"nationality" validate:"omitempty,min=1,max=255"`
	GoalsSeason *int    `json:"goals_season" validate:"omitempty,gte=0"`
	TeamID      *int    `json:"team_id" validate:"omitempty,gt=0"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	events     EventPublisher
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, events EventPublisher) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		events:     events,
	}
}

// List fetches the page slice and the filter-wide total concurrently; both
// share the same predicates, so the total is independent of the page bounds.
func (s *playerService) List(ctx context.Context, filter ListPlayersFilter) (*PlayerPage, error) {
	page := filter.Page.normalize()
	repoFilter := repositories.PlayerFilter{
		Position: filter.Position,
		Name:     filter.Name,
		TeamID:   filter.TeamID,
		Limit:    page.PerPage,
		Offset:   page.offset(),
	}

	var (
		players []models.Player
		total   int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx, repoFilter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.playerRepo.Count(gCtx, repoFilter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return &PlayerPage{
		Players:     players,
		Total:       total,
		CurrentPage: page.Number,
	}, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkTeamExists(ctx, input.TeamID); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:        input.Name,
		Position:    input.Position,
		Age:         *input.Age,
		Nationality: input.Nationality,
		GoalsSeason: *input.GoalsSeason,
		TeamID:      input.TeamID,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, validation.Errors{"team_id": "The selected team_id is invalid"}
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	// Reload so the projection sees the denormalized team name.
	created, err := s.playerRepo.GetByID(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created player: %w", err)
	}

	s.publish(EventPlayerCreated, created)
	return created, nil
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Position != nil {
		player.Position = *input.Position
	}
	if input.Age != nil {
		player.Age = *input.Age
	}
	if input.Nationality != nil {
		player.Nationality = *input.Nationality
	}
	if input.GoalsSeason != nil {
		player.GoalsSeason = *input.GoalsSeason
	}
	if input.TeamID != nil {
		if err := s.checkTeamExists(ctx, input.TeamID); err != nil {
			return nil, err
		}
		player.TeamID = input.TeamID
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, validation.Errors{"team_id": "The selected team_id is invalid"}
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	updated, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated player: %w", err)
	}

	s.publish(EventPlayerUpdated, updated)
	return updated, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}

	s.publish(EventPlayerDeleted, map[string]int{"id": id})
	return nil
}

// checkTeamExists mirrors a declarative "exists" rule: an unknown team id is
// a field-level validation failure, not a 404.
func (s *playerService) checkTeamExists(ctx context.Context, teamID *int) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return validation.Errors{"team_id": "The selected team_id is invalid"}
		}
		return err
	}
	return nil
}

func (s *playerService) publish(eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}
