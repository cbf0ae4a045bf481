package specification

import "gorm.io/gorm"

type ByNamespace struct {
	Namespace string
}

func (s ByNamespace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("namespace = ?", s.Namespace)
}

type ByOwnerKey struct {
	OwnerKey string
}

func (s ByOwnerKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_key = ?", s.OwnerKey)
}
