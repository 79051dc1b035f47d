package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresUsers implements UserStore on top of database/sql.
type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

const userColumns = `id, email, name, image, email_verified, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Image,
		&u.EmailVerified,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *PostgresUsers) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *PostgresUsers) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PostgresUsers) Create(ctx context.Context, n NewUser) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, role)
		VALUES ($1, $2)
		RETURNING `+userColumns+`
	`, n.Email, n.Role)

	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *PostgresUsers) Update(ctx context.Context, id string, patch UserPatch) (*User, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}

	appendField := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		appendField("name", *patch.Name)
	}
	if patch.Image != nil {
		appendField("image", *patch.Image)
	}
	if patch.Role != nil {
		appendField("role", *patch.Role)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET `+strings.Join(set, ", ")+`
		WHERE id = $1
		RETURNING `+userColumns+`
	`, args...)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *PostgresUsers) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresAccounts implements AccountStore on top of database/sql.
type PostgresAccounts struct {
	db *sql.DB
}

func NewPostgresAccounts(db *sql.DB) *PostgresAccounts {
	return &PostgresAccounts{db: db}
}

func (r *PostgresAccounts) Find(ctx context.Context, f AccountFilter) ([]Account, error) {
	where := []string{"TRUE"}
	args := []any{}

	appendCond := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	appendCond("provider", f.Provider)
	appendCond("provider_account_id", f.ProviderAccountID)
	appendCond("user_id", f.UserID)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, provider, provider_account_id, type,
		       access_token, refresh_token, created_at
		FROM accounts
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Provider,
			&a.ProviderAccountID,
			&a.Type,
			&a.AccessToken,
			&a.RefreshToken,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("find accounts: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PostgresAccounts) Create(ctx context.Context, n NewAccount) (*Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (user_id, provider, provider_account_id, type,
		                      access_token, refresh_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, provider, provider_account_id, type,
		          access_token, refresh_token, created_at
	`,
		n.UserID,
		n.Provider,
		n.ProviderAccountID,
		n.Type,
		n.AccessToken,
		n.RefreshToken,
	).Scan(
		&a.ID,
		&a.UserID,
		&a.Provider,
		&a.ProviderAccountID,
		&a.Type,
		&a.AccessToken,
		&a.RefreshToken,
		&a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateLink
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &a, nil
}

func (r *PostgresAccounts) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
