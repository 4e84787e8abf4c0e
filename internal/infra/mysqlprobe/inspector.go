// Package mysqlprobe issues the direct schema and ordering queries against
// the backend's MySQL database.
package mysqlprobe

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

// The backend's user table stores timestamps in camelCase columns
// (createdAt, not created_at). The leaderboard ordering query depends on
// it, so both spellings are probed: the current one must work, the legacy
// one must not.
const (
	orderingQuery = "SELECT id, username, nickname, points FROM users ORDER BY points DESC, createdAt ASC LIMIT ?"
	legacyQuery   = "SELECT id, username FROM users ORDER BY points DESC, created_at ASC LIMIT 1"
)

type Inspector struct {
	db *sql.DB
}

// Open connects to the database described by the profile. The connection is
// verified lazily; callers see connectivity errors on the first query.
func Open(profile domain.DBProfile) (*Inspector, error) {
	db, err := sql.Open("mysql", profile.DSN())
	if err != nil {
		return nil, &domain.OpError{
			Op:   "mysqlprobe.open",
			Kind: domain.KindInvalidProfile,
			Err:  err,
		}
	}

	// A throwaway probe connection; keep the pool minimal.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	return &Inspector{db: db}, nil
}

var _ ports.SchemaInspector = (*Inspector)(nil)

func (i *Inspector) DescribeTable(ctx context.Context, table string) ([]domain.ColumnInfo, error) {
	if !validTableName(table) {
		return nil, &domain.OpError{
			Op:   "mysqlprobe.describe",
			Kind: domain.KindInvalidProfile,
			Err:  fmt.Errorf("invalid table name %q", table),
		}
	}

	// DESCRIBE does not accept placeholders; the name is validated above.
	rows, err := i.db.QueryContext(ctx, "DESCRIBE "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []domain.ColumnInfo
	for rows.Next() {
		var field, typ, null string
		var key, def, extra sql.NullString
		if err := rows.Scan(&field, &typ, &null, &key, &def, &extra); err != nil {
			return nil, err
		}
		columns = append(columns, domain.ColumnInfo{
			Field: field,
			Type:  typ,
			Null:  null,
			Key:   key.String,
		})
	}
	return columns, rows.Err()
}

func (i *Inspector) TopUsersByPoints(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := i.db.QueryContext(ctx, orderingQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.RankedUser
	for rows.Next() {
		var u domain.RankedUser
		var nickname sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &nickname, &u.Points); err != nil {
			return nil, err
		}
		u.Nickname = nickname.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func (i *Inspector) ProbeLegacyOrdering(ctx context.Context) error {
	rows, err := i.db.QueryContext(ctx, legacyQuery)
	if err != nil {
		return err
	}
	// Reaching here means the legacy column still exists; the caller treats
	// a nil error as the schema having regressed.
	defer rows.Close()
	return rows.Err()
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

func validTableName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
