package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList stores a sequence of short tags. On postgres it maps to a
// native text[] column via the lib/pq array codec; other dialects store
// the same array literal in a TEXT column, which lib/pq reads back.
type StringList []string

// Value implements driver.Valuer via the pq array encoding.
func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

// Scan implements sql.Scanner via the pq array decoding.
func (l *StringList) Scan(value interface{}) error {
	return (*pq.StringArray)(l).Scan(value)
}

// GormDataType gives the schema parser a base type so fields of this
// type resolve without a struct tag.
func (StringList) GormDataType() string {
	return "text"
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "TEXT"
}

// Contains reports whether the list holds the given tag.
func (l StringList) Contains(tag string) bool {
	for _, v := range l {
		if v == tag {
			return true
		}
	}
	return false
}
