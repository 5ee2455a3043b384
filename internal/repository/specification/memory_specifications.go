package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOwnerScopes restricts records to one or more owner scopes (sessions).
type ByOwnerScopes struct {
	Scopes []uuid.UUID
}

func (s ByOwnerScopes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_scope IN ?", s.Scopes)
}

// ByDocumentId restricts records to one source document.
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ExcludeSourceKinds drops records whose source_kind is in the given set.
type ExcludeSourceKinds struct {
	Kinds []string
}

func (s ExcludeSourceKinds) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Kinds) == 0 {
		return db
	}
	return db.Where("source_kind NOT IN ?", s.Kinds)
}

// StatusIs filters documents by job status.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// UpdatedBefore filters rows whose updated_at is older than the cutoff.
// Used by the stale-job sweep.
type UpdatedBefore struct {
	Cutoff time.Time
}

func (s UpdatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("updated_at < ?", s.Cutoff)
}
