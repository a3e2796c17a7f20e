package utils

import (
	"database/sql"
	"time"
)

func NullStringToString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

func NullTimeToEmptyString(t sql.NullTime) string {
	if t.Valid {
		return t.Time.Local().Format("2006-01-02 15:04:05")
	}
	return ""
}

func NullTimeToPtr(t sql.NullTime) *time.Time {
	if t.Valid {
		v := t.Time
		return &v
	}
	return nil
}

func NullInt64ToPtr(n sql.NullInt64) *uint64 {
	if n.Valid {
		v := uint64(n.Int64)
		return &v
	}
	return nil
}

func NullFloatToPtr(n sql.NullFloat64) *float64 {
	if n.Valid {
		v := n.Float64
		return &v
	}
	return nil
}

func Ptr[T any](v T) *T { return &v }
