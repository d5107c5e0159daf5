package services

import (
	"context"
	"io"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/storage"
)

// In-memory repository doubles. They return copies so callers clearing
// fields (like PasswordHash) cannot corrupt the stored state.

type fakeUserRepo struct {
	nextID  int
	byID    map[int]models.User
	byEmail map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[int]models.User),
		byEmail: make(map[string]int),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return repositories.ErrUserEmailConflict
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

type fakeTokenRepo struct {
	nextID  int
	byHash  map[string]models.AccessToken
	users   *fakeUserRepo
	touched []string
}

func newFakeTokenRepo(users *fakeUserRepo) *fakeTokenRepo {
	return &fakeTokenRepo{
		byHash: make(map[string]models.AccessToken),
		users:  users,
	}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.AccessToken) error {
	r.nextID++
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	r.byHash[token.TokenHash] = *token
	return nil
}

func (r *fakeTokenRepo) GetUserByTokenHash(ctx context.Context, hash string) (*models.User, error) {
	token, ok := r.byHash[hash]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	return r.users.GetByID(ctx, token.UserID)
}

func (r *fakeTokenRepo) Touch(_ context.Context, hash string) error {
	r.touched = append(r.touched, hash)
	return nil
}

func (r *fakeTokenRepo) DeleteByHash(_ context.Context, hash string) error {
	if _, ok := r.byHash[hash]; !ok {
		return repositories.ErrTokenNotFound
	}
	delete(r.byHash, hash)
	return nil
}

type fakePlayerRepo struct {
	nextID     int
	players    map[int]models.Player
	lastFilter repositories.PlayerFilter
	total      int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]models.Player)}
}

func (r *fakePlayerRepo) List(_ context.Context, filter repositories.PlayerFilter) ([]models.Player, error) {
	r.lastFilter = filter
	players := make([]models.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, player)
	}
	return players, nil
}

func (r *fakePlayerRepo) Count(_ context.Context, filter repositories.PlayerFilter) (int, error) {
	if r.total > 0 {
		return r.total, nil
	}
	return len(r.players), nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	r.nextID++
	player.ID = r.nextID
	player.CreatedAt = time.Now()
	player.UpdatedAt = player.CreatedAt
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	player.UpdatedAt = time.Now()
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeTeamRepo struct {
	nextID     int
	teams      map[int]models.Team
	lastLimit  int
	lastOffset int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]models.Team)}
}

func (r *fakeTeamRepo) List(_ context.Context, limit, offset int) ([]models.Team, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	teams := make([]models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *fakeTeamRepo) Count(_ context.Context) (int, error) {
	return len(r.teams), nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.nextID++
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	team.UpdatedAt = time.Now()
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = &logoKey
	r.teams[id] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(eventType string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

type fakeUploader struct {
	baseURL   string
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: u.baseURL + "/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	if u.baseURL == "" {
		return ""
	}
	return u.baseURL + "/" + key
}
