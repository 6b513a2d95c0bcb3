package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/staff"
)

// StaffDal represents the staff data access layer model.
type StaffDal struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         string
	Email        string
	Role         string
	DeviceTokens []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToModel converts StaffDal to the service layer Member model.
func (d *StaffDal) ToModel() (*staff.Member, error) {
	role, err := staff.ParseRole(d.Role)
	if err != nil {
		return nil, err
	}

	return &staff.Member{
		ID:           d.ID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         role,
		DeviceTokens: d.DeviceTokens,
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// PostgresStaffRepository represents a Postgres staff repository.
type PostgresStaffRepository struct {
	conn postgres.Querier
}

// NewPostgresStaffRepository creates a new Postgres staff repository.
func NewPostgresStaffRepository(conn postgres.Querier) *PostgresStaffRepository {
	return &PostgresStaffRepository{
		conn: conn,
	}
}

// GetByID loads one tenant-scoped staff member.
func (r *PostgresStaffRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*staff.Member, error) {
	query, args, err := sq.Select("id", "tenant_id", "name", "email", "role", "device_tokens", "active", "created_at", "updated_at").
		From("staff").
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var d StaffDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&d.ID,
		&d.TenantID,
		&d.Name,
		&d.Email,
		&d.Role,
		&d.DeviceTokens,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staff.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return d.ToModel()
}

// ActiveDeviceTokens collects FCM tokens of active members holding any of
// the roles; no roles means every role.
func (r *PostgresStaffRepository) ActiveDeviceTokens(ctx context.Context, tenantID uuid.UUID, roles []staff.Role) ([]string, error) {
	builder := sq.Select("DISTINCT unnest(device_tokens)").
		From("staff").
		Where(sq.Eq{"tenant_id": tenantID, "active": true}).
		PlaceholderFormat(sq.Dollar)

	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		builder = builder.Where(sq.Eq{"role": names})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tokens, nil
}
