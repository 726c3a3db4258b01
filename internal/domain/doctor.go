package domain

import "github.com/uptrace/bun"

// Doctor is immutable once constructed; the directory cache holds at
// most one copy per id for the process lifetime.
type Doctor struct {
	bun.BaseModel `bun:"table:doctors"`

	ID             int64  `bun:"doctor_id,pk,autoincrement"`
	Name           string `bun:"name,notnull"`
	Specialization string `bun:"specialization,notnull"`
	Contact        string `bun:"contact"`
}
