package postgres

import (
	"context"
	"time"

	"github.com/vendra/vendra/internal/domain/user"
)

const userCols = `id, email, name, password_hash, role, COALESCE(tenant_id::text, ''), enabled, created_at, updated_at`

func scanUser(row scannable) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.TenantID, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, tenant_id, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, nullIfEmpty(u.TenantID), u.Enabled, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return conflictWrap(err, "create user %s", u.Email)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return u, nil
}

// GetUserByEmail scopes the lookup to one tenant. An empty tenantID matches
// startup users, who have no tenant yet.
func (s *Store) GetUserByEmail(ctx context.Context, email, tenantID string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1 AND COALESCE(tenant_id::text, '') = $2`,
		email, tenantID))
	if err != nil {
		return nil, notFoundWrap(err, "get user by email %s", email)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET name = $2, role = $3, enabled = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`,
		u.ID, u.Name, u.Role, u.Enabled, u.PasswordHash, u.UpdatedAt,
	)
	return execExpectOne(tag, err, "update user %s", u.ID)
}

// --- Startup profiles ---

const profileCols = `id, email, full_name, company_name, phone, created_at, updated_at`

func scanProfile(row scannable) (*user.StartupProfile, error) {
	var p user.StartupProfile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.CompanyName, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetStartupProfile(ctx context.Context, id string) (*user.StartupProfile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM startup_profiles WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get startup profile %s", id)
	}
	return p, nil
}

func (s *Store) CreateStartupProfile(ctx context.Context, p *user.StartupProfile) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO startup_profiles (id, email, full_name, company_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		p.ID, p.Email, p.FullName, p.CompanyName, p.Phone,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create startup profile %s", p.ID)
	}
	return nil
}

func (s *Store) UpdateStartupProfile(ctx context.Context, p *user.StartupProfile) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE startup_profiles SET full_name = $2, company_name = $3, phone = $4, updated_at = now()
		WHERE id = $1`,
		p.ID, p.FullName, p.CompanyName, p.Phone,
	)
	return execExpectOne(tag, err, "update startup profile %s", p.ID)
}
