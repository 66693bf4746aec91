package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/taskbox/taskbox/internal/database"
	"golang.org/x/crypto/bcrypt"
)

type (
	// Store keeps the credential table. Passwords never touch the
	// table, only their bcrypt hash does.
	Store struct {
		db *database.DB
	}

	User struct {
		ID        string    `json:"userId"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

const minPasswordLen = 6

// Setup creates the tables required by the credential store.
func Setup(ctx context.Context, db *database.DB) error {
	_, err := db.ExecContext(ctx, `create table if not exists users (
		user_id text primary key,
		username text not null unique,
		password_hash text not null,
		created_at timestamp not null,
		updated_at timestamp not null)`)
	if err != nil {
		return fmt.Errorf("account: unable to create users table, cause %w", err)
	}
	return nil
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Register persists a new user with a bcrypt hash of the password.
// Username uniqueness rides on the table constraint, never on a
// check-then-insert, so two concurrent registrations cannot both win.
func (s *Store) Register(ctx context.Context, username, password string) (User, error) {
	if username == "" || password == "" {
		return User{}, ValidationError{Msg: "Username and password are required"}
	}
	if len(password) < minPasswordLen {
		return User{}, ValidationError{Msg: "Password must be at least 6 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("account: unable to hash password, cause %w", err)
	}
	id, err := gonanoid.New()
	if err != nil {
		return User{}, fmt.Errorf("account: unable to generate user id, cause %w", err)
	}
	user := User{
		ID:        "user_" + id,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		s.db.Rebind(`insert into users (user_id, username, password_hash, created_at, updated_at) values (?, ?, ?, ?, ?)`),
		user.ID, user.Username, string(hash), user.CreatedAt, user.CreatedAt)
	if isUniqueViolation(err) {
		return User{}, ConflictError{Username: username}
	} else if err != nil {
		return User{}, fmt.Errorf("account: unable to insert user, cause %w", err)
	}
	return user, nil
}

// Authenticate resolves the identity behind a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (User, error) {
	var user User
	var hash string
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`select user_id, username, password_hash, created_at from users where username = ?`),
		username).Scan(&user.ID, &user.Username, &hash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	} else if err != nil {
		return User{}, fmt.Errorf("account: unable to load user %v, cause %w", username, err)
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Profile loads a user by id.
func (s *Store) Profile(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`select user_id, username, created_at from users where user_id = ?`),
		userID).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, NotFoundError{UserID: userID}
	} else if err != nil {
		return User{}, fmt.Errorf("account: unable to load user %v, cause %w", userID, err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
