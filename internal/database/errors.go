package database

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors for constraint rejections. Writes that violate a
// uniqueness rule or reference a missing parent row fail immediately
// with one of these; callers match with errors.Is.
var (
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate value")
	// ErrForeignKey indicates a referenced parent row does not exist,
	// or a delete was rejected because dependent rows still exist.
	ErrForeignKey = errors.New("foreign key violation")
)

// mapError translates SQLite constraint result codes into the sentinel
// errors above. Other errors pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return err
	}

	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", ErrForeignKey, err)
	}

	// Older SQLite builds may report the base constraint code only
	if serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}

	return err
}
