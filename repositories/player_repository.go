package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-api/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team reference is invalid")
)

// PlayerFilter narrows List and Count. Nil fields impose no predicate, so a
// zero filter returns the full set. Predicates are independent and applied
// conjunctively.
type PlayerFilter struct {
	Position *string
	Name     *string // substring match, store-default collation
	TeamID   *int
	Limit    int
	Offset   int
}

// predicates renders the WHERE tail shared by List and Count. Positional
// argument numbering starts at 1.
func (f PlayerFilter) predicates() (string, []interface{}) {
	clause := ""
	args := []interface{}{}
	argID := 1

	if f.Position != nil {
		clause += fmt.Sprintf(" AND p.position = $%d", argID)
		args = append(args, *f.Position)
		argID++
	}
	if f.Name != nil {
		clause += fmt.Sprintf(" AND p.name LIKE '%%' || $%d || '%%'", argID)
		args = append(args, *f.Name)
		argID++
	}
	if f.TeamID != nil {
		clause += fmt.Sprintf(" AND p.team_id = $%d", argID)
		args = append(args, *f.TeamID)
	}

	return clause, args
}

type PlayerRepository interface {
	List(ctx context.Context, filter PlayerFilter) ([]models.Player, error)
	Count(ctx context.Context, filter PlayerFilter) (int, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerSelectColumns = `
		p.id, p.name, p.position, p.age, p.nationality, p.goals_season,
		p.team_id, p.created_at, p.updated_at,
		t.id, t.name`

func (r *postgresPlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	clause, args := filter.predicates()
	argID := len(args) + 1

	query := `
		SELECT` + playerSelectColumns + `
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE 1=1` + clause + `
		ORDER BY p.id ASC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := scanPlayerRow(rows, &player); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

// Count reports the size of the filtered set independent of Limit/Offset.
func (r *postgresPlayerRepository) Count(ctx context.Context, filter PlayerFilter) (int, error) {
	clause, args := filter.predicates()
	query := `SELECT COUNT(*) FROM players p WHERE 1=1` + clause

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT` + playerSelectColumns + `
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var player models.Player
	if err := scanPlayerRow(row, &player); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, position, age, nationality, goals_season, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Age,
		player.Nationality,
		player.GoalsSeason,
		player.TeamID,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			position = $2,
			age = $3,
			nationality = $4,
			goals_season = $5,
			team_id = $6,
			updated_at = now()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Age,
		player.Nationality,
		player.GoalsSeason,
		player.TeamID,
		player.ID,
	).Scan(&player.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPlayerRow scans the joined player/team columns. The team side of the
// LEFT JOIN may be entirely NULL.
func scanPlayerRow(row rowScanner, player *models.Player) error {
	var teamID sql.NullInt64
	var teamName sql.NullString

	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.Age,
		&player.Nationality,
		&player.GoalsSeason,
		&player.TeamID,
		&player.CreatedAt,
		&player.UpdatedAt,
		&teamID,
		&teamName,
	)
	if err != nil {
		return err
	}

	if teamID.Valid {
		player.Team = &models.Team{
			ID:   int(teamID.Int64),
			Name: teamName.String,
		}
	}
	return nil
}
