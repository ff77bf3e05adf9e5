package session

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
)

//go:embed schema.sql
var schema string

// Verify interface compliance
var _ driven.SessionStore = (*PostgresStore)(nil)

// credentialBlob is the encrypted-at-rest portion of a persisted session.
type credentialBlob struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Authenticated bool   `json:"authenticated"`
}

// PostgresStore implements SessionStore on PostgreSQL. Credential pairs
// are encrypted with AES-256-GCM before they touch the database.
type PostgresStore struct {
	db  *sql.DB
	enc *SecretEncryptor
}

// ConnectPostgres opens a pooled connection and verifies it.
func ConnectPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewPostgresStore creates a PostgreSQL-backed SessionStore.
func NewPostgresStore(db *sql.DB, enc *SecretEncryptor) *PostgresStore {
	return &PostgresStore{db: db, enc: enc}
}

// InitSchema creates the sessions table. Idempotent.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, session *domain.Session) error {
	blob, err := s.encrypt(session)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO console_sessions (id, credential, expires_at, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)`,
		session.ID, blob, session.ExpiresAt, session.CreatedAt, session.LastSeenAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, credential, expires_at, created_at, last_seen_at
		FROM console_sessions
		WHERE id = $1 AND expires_at > now()`,
		id,
	)

	var (
		session domain.Session
		blob    []byte
	)
	err := row.Scan(&session.ID, &blob, &session.ExpiresAt, &session.CreatedAt, &session.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var cred credentialBlob
	if err := s.enc.Decrypt(blob, &cred); err != nil {
		return nil, fmt.Errorf("decrypt session credential: %w", err)
	}

	creds := domain.NewCredentialStore()
	creds.Restore(domain.Credential{Username: cred.Username, Password: cred.Password}, cred.Authenticated)
	session.Credentials = creds
	return &session, nil
}

func (s *PostgresStore) Save(ctx context.Context, session *domain.Session) error {
	blob, err := s.encrypt(session)
	if err != nil {
		return err
	}

	session.LastSeenAt = time.Now()
	_, err = s.db.ExecContext(ctx, `
		UPDATE console_sessions
		SET credential = $2, last_seen_at = $3
		WHERE id = $1`,
		session.ID, blob, session.LastSeenAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM console_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired rows; called periodically by the runner.
func (s *PostgresStore) PurgeExpired(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM console_sessions WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) encrypt(session *domain.Session) ([]byte, error) {
	cred, authenticated := session.Credentials.Snapshot()
	blob, err := s.enc.Encrypt(credentialBlob{
		Username:      cred.Username,
		Password:      cred.Password,
		Authenticated: authenticated,
	})
	if err != nil {
		return nil, fmt.Errorf("encrypt session credential: %w", err)
	}
	return blob, nil
}
