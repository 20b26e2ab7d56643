package queries

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// Scope selects which soft-delete state an entity read sees.
type Scope int

const (
	// Default hides soft-deleted records.
	Default Scope = iota
	WithDeleted
	OnlyDeleted
)

// ParseScope accepts "", "default", "withDeleted" and "onlyDeleted" in any case.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default, nil
	case "withdeleted", "with_deleted":
		return WithDeleted, nil
	case "onlydeleted", "only_deleted":
		return OnlyDeleted, nil
	}
	return Default, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("unknown scope %q", s))
}

func (s Scope) String() string {
	switch s {
	case WithDeleted:
		return "withDeleted"
	case OnlyDeleted:
		return "onlyDeleted"
	default:
		return "default"
	}
}

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	switch s {
	case WithDeleted:
		return db
	case OnlyDeleted:
		return db.Where("is_deleted = ?", true)
	default:
		return db.Where("is_deleted = ?", false)
	}
}
