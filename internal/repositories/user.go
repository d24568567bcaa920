package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, contact_no, email, password_hash, role, status,
	gender, dob, is_verified, verified_at, verification_token, password_token,
	password_token_expiration, authorized, profile_image, profile_image_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.ContactNo,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Gender,
		&user.DOB,
		&user.IsVerified,
		&user.VerifiedAt,
		&user.VerificationToken,
		&user.PasswordToken,
		&user.PasswordTokenExpiration,
		&user.Authorized,
		&user.ProfileImage,
		&user.ProfileImageID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user. A taken email yields ErrDuplicateEntry.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Email = strings.ToLower(user.Email)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, contact_no, email, password_hash, role, status,
			gender, dob, is_verified, verification_token, authorized, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		user.ID, user.FirstName, user.LastName, user.ContactNo, user.Email, user.PasswordHash,
		user.Role, user.Status, user.Gender, user.DOB, user.IsVerified, user.VerificationToken,
		user.Authorized, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, mapError(err))
	}
	return user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", mapError(err))
	}
	return user, nil
}

// Update writes every mutable column of user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			first_name = $2, last_name = $3, contact_no = $4, password_hash = $5, role = $6,
			status = $7, gender = $8, dob = $9, is_verified = $10, verified_at = $11,
			verification_token = $12, password_token = $13, password_token_expiration = $14,
			authorized = $15, profile_image = $16, profile_image_id = $17, updated_at = $18
		WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.ContactNo, user.PasswordHash, user.Role,
		user.Status, user.Gender, user.DOB, user.IsVerified, user.VerifiedAt,
		user.VerificationToken, user.PasswordToken, user.PasswordTokenExpiration,
		user.Authorized, user.ProfileImage, user.ProfileImageID, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapError(err))
	}
	return requireAffected(result)
}

// Delete removes a user together with their addresses, cart, wishlist, reviews and orders
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	return requireAffected(result)
}

// List returns one page of users matching filters, newest first, and the total match count
func (r *UserRepository) List(ctx context.Context, filters models.UserListFilters) ([]*models.User, int, error) {
	var c conditions
	if filters.Search != "" {
		c.add(`email LIKE ?`, strings.ToLower(escapeLike(filters.Search))+"%")
	}
	if filters.Role != nil {
		c.add(`role = ?`, *filters.Role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get user count: %w", err)
	}

	page := models.NewPagination(filters.Page, models.UsersPerPage)
	query := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		userColumns, c.where(), c.next(page.Take), c.next(page.Offset()))

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}
