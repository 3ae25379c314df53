package database

import "database/sql"

// nullStringToPtr converts a sql.NullString to a pointer (nil if not valid)
func nullStringToPtr(n sql.NullString) *string {
	if n.Valid {
		return &n.String
	}
	return nil
}

// ptrToNullString converts a string pointer to a sql.NullString
func ptrToNullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
