package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports a unique-constraint violation. Seat inserts and
// booking references rely on this to turn storage conflicts into domain
// conflicts instead of 500s.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullIfZero stores optional numeric FKs as NULL.
func NullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
