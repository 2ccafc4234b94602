package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres is a UserStore over the "users" table.
type Postgres struct {
	db  DBTX
	now func() time.Time
}

func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

const selectUser = `SELECT id, handle, password_hash, display_name, bio, profile_image, status, role, created_at, updated_at
		 FROM users
		 `

func (p *Postgres) FindByHandle(ctx context.Context, handle string) (*tokenAuth.User, error) {
	return p.findOne(ctx, selectUser+`WHERE handle = $1`, handle)
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*tokenAuth.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, tokenAuth.ErrUserNotFound
	}
	return p.findOne(ctx, selectUser+`WHERE id = $1`, id)
}

func (p *Postgres) findOne(ctx context.Context, query string, arg string) (*tokenAuth.User, error) {
	u := &tokenAuth.User{}
	var status, role string
	err := p.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Handle, &u.PasswordHash, &u.DisplayName, &u.Bio, &u.ProfileImage,
		&status, &role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenAuth.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Status = tokenAuth.UserStatus(status)
	u.Role = tokenAuth.Role(role)
	return u, nil
}

func (p *Postgres) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE handle = $1)`, handle,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts user, assigning an id and timestamps when they are unset.
func (p *Postgres) Create(ctx context.Context, user *tokenAuth.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = p.now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO users (id, handle, password_hash, display_name, bio, profile_image, status, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Handle, user.PasswordHash, user.DisplayName, user.Bio, user.ProfileImage,
		string(user.Status), string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %v", tokenAuth.ErrDuplicateHandle, err)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetStatus changes the account status of id.
func (p *Postgres) SetStatus(ctx context.Context, id string, status tokenAuth.UserStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := p.db.ExecContext(ctx,
		`UPDATE users SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), p.now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return tokenAuth.ErrUserNotFound
	}
	return nil
}

// Ping checks the connection when the handle supports it.
func (p *Postgres) Ping(ctx context.Context) error {
	pinger, ok := p.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	if err := pinger.PingContext(ctx); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
