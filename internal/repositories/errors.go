package repositories

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/recyclerewards/backend/internal/models"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL unique key violation
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// txFailure marks a datastore error raised inside a transaction
func txFailure(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", models.ErrTransactionFailure, action, err)
}

// pageOffset converts a 1-based page number into a row offset
func pageOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
