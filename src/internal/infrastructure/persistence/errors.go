package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// pgUniqueViolation PostgreSQL unique_violation SQLSTATE
const pgUniqueViolation = "23505"

// IsUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 依序檢查：
// - gorm.ErrDuplicatedKey（開啟 TranslateError 時）
// - PostgreSQL（pgx）：*pgconn.PgError 且 SQLSTATE 23505
// - SQLite（go-sqlite3）：ErrConstraintUnique / ErrConstraintPrimaryKey
// - 以上皆非時比對錯誤訊息（驅動被包裝過的情況）
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	errMsg := strings.ToLower(err.Error())

	// PostgreSQL
	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}

	return false
}

// IsNotFound 判斷是否為查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
