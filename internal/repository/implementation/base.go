package implementation

import (
	"collabhub-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func toJSON(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}
