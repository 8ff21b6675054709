package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

type UserRepository struct {
	DB *db.Postgres
}

type CreateUserParams struct {
	Email              string
	Role               domain.UserRole
	FirstName          string
	LastName           string
	CallNumber         string
	WhatsappNumber     string
	ProfileImage       string
	PasswordHash       *string
	OnboardingComplete bool
}

const userColumns = `id, email, role, status, onboarding_complete, first_name, last_name,
		call_number, whatsapp_number, profile_image, password_hash, created_at, updated_at`

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (email, role, status, onboarding_complete, first_name, last_name,
			call_number, whatsapp_number, profile_image, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now(), now())
		RETURNING `+userColumns+`
	`, p.Email, p.Role, domain.UserActive, p.OnboardingComplete, p.FirstName, p.LastName,
		p.CallNumber, p.WhatsappNumber, p.ProfileImage, p.PasswordHash)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email=$1 AND deleted_at IS NULL
	`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListByRole returns users holding exactly the given role (e.g. the staff
// roster).
func (r UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role=$1 AND deleted_at IS NULL
		ORDER BY id ASC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListCustomers returns everyone outside the admin/Staff roles, matching
// the admin "all users" view.
func (r UserRepository) ListCustomers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role NOT IN ($1,$2) AND deleted_at IS NULL
		ORDER BY id ASC
	`, domain.RoleAdmin, domain.RoleStaff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r UserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE users SET status=$1, updated_at=now()
		WHERE id=$2 AND deleted_at IS NULL
	`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteOnboarding fills the secondary-profile fields and flips the
// onboarding flag in one write.
func (r UserRepository) CompleteOnboarding(ctx context.Context, id int64, firstName, lastName, callNumber, whatsappNumber, profileImage string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET first_name=$1,
			last_name=$2,
			call_number=$3,
			whatsapp_number=$4,
			profile_image=COALESCE(NULLIF($5,''), profile_image),
			onboarding_complete=TRUE,
			updated_at=now()
		WHERE id=$6 AND deleted_at IS NULL
		RETURNING `+userColumns+`
	`, firstName, lastName, callNumber, whatsappNumber, profileImage, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateSettings applies a partial profile edit; empty fields are left as
// they are.
func (r UserRepository) UpdateSettings(ctx context.Context, id int64, firstName, lastName, callNumber, whatsappNumber string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET first_name=COALESCE(NULLIF($1,''), first_name),
			last_name=COALESCE(NULLIF($2,''), last_name),
			call_number=COALESCE(NULLIF($3,''), call_number),
			whatsapp_number=COALESCE(NULLIF($4,''), whatsapp_number),
			updated_at=now()
		WHERE id=$5 AND deleted_at IS NULL
		RETURNING `+userColumns+`
	`, firstName, lastName, callNumber, whatsappNumber, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE users SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		u      domain.User
		role   string
		status string
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&role,
		&status,
		&u.OnboardingComplete,
		&u.FirstName,
		&u.LastName,
		&u.CallNumber,
		&u.WhatsappNumber,
		&u.ProfileImage,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	u.Status = domain.UserStatus(status)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// IsDuplicate detects unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
