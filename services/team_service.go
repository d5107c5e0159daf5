package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/storage"
	"github.com/Dosada05/league-api/validation"
	"golang.org/x/sync/errgroup"
)

type TeamService interface {
	List(ctx context.Context, page Page) (*TeamPage, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
}

type TeamPage struct {
	Teams       []models.Team
	Total       int
	CurrentPage int
}

type CreateTeamInput struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Coach     *string `json:"coach" validate:"omitempty,max=255"`
	FoundedIn *int    `json:"founded_in" validate:"required,gte=1800"`
	Stadium   string  `json:"stadium" validate:"required,max=255"`
}

type UpdateTeamInput struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Coach     *string `json:"coach" validate:"omitempty,max=255"`
	FoundedIn *int    `json:"founded_in" validate:"omitempty,gte=1800"`
	Stadium   *string `json:"stadium" validate:"omitempty,min=1,max=255"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	events   EventPublisher
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, events EventPublisher) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		events:   events,
	}
}

func (s *teamService) List(ctx context.Context, page Page) (*TeamPage, error) {
	page = page.normalize()

	var (
		teams []models.Team
		total int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx, page.PerPage, page.offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.teamRepo.Count(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	for i := range teams {
		s.attachLogoURL(&teams[i])
	}

	return &TeamPage{
		Teams:       teams,
		Total:       total,
		CurrentPage: page.Number,
	}, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.attachLogoURL(team)
	return team, nil
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := checkFoundedYear(input.FoundedIn); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:      input.Name,
		Coach:     input.Coach,
		FoundedIn: *input.FoundedIn,
		Stadium:   input.Stadium,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.publish(EventTeamCreated, team)
	return team, nil
}

func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := checkFoundedYear(input.FoundedIn); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Coach != nil {
		team.Coach = input.Coach
	}
	if input.FoundedIn != nil {
		team.FoundedIn = *input.FoundedIn
	}
	if input.Stadium != nil {
		team.Stadium = *input.Stadium
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.attachLogoURL(team)
	s.publish(EventTeamUpdated, team)
	return team, nil
}

// Delete removes the team; the store orphans dependent players by nulling
// their team_id.
func (s *teamService) Delete(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.publish(EventTeamDeleted, map[string]int{"id": id})
	return nil
}

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

func (s *teamService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}

	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != key {
		// Old object under a different extension; best effort cleanup.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, id, key); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to save team logo key: %w", err)
	}

	team.LogoKey = &key
	s.attachLogoURL(team)
	s.publish(EventTeamUpdated, team)
	return team, nil
}

func (s *teamService) attachLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func (s *teamService) publish(eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}

// checkFoundedYear enforces the dynamic upper bound that the tag rules
// cannot express.
func checkFoundedYear(foundedIn *int) error {
	if foundedIn == nil {
		return nil
	}
	if year := time.Now().Year(); *foundedIn > year {
		return validation.Errors{"founded_in": fmt.Sprintf("The founded_in must not be greater than %d", year)}
	}
	return nil
}
