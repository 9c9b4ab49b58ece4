package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kalibre-teknik/backoffice/internal/models"
)

// UserRepository handles personnel database operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user with a bcrypt password hash
func (r *UserRepository) Create(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, name, title, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Name,
		user.Title, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, email, password_hash, name, title, role, is_active, created_at, updated_at, last_login_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.TenantID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Title, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		&user.LastLoginAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, email, password_hash, name, title, role, is_active, created_at, updated_at, last_login_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.TenantID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Title, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		&user.LastLoginAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// ValidatePassword validates a user's password
func (r *UserRepository) ValidatePassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdateLastLogin updates the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = $1 WHERE id = $2",
		now, userID,
	)
	return err
}

// ListByTenant retrieves all users of a tenant
func (r *UserRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, email, password_hash, name, title, role, is_active, created_at, updated_at, last_login_at
		 FROM users WHERE tenant_id = $1 ORDER BY name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.TenantID, &user.Email, &user.PasswordHash,
			&user.Name, &user.Title, &user.Role, &user.IsActive, &user.CreatedAt,
			&user.UpdatedAt, &user.LastLoginAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
