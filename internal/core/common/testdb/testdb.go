package testdb

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens an isolated in-memory SQLite database with foreign keys
// enforced and applies the given schema statements. Constraint errors
// translate to the same gorm sentinels the postgres driver produces,
// so repositories behave identically under test.
func Open(schema []string) (*gorm.DB, error) {
	db, err := gorm.Open(constraintDialector{sqlite.Open("file::memory:?_foreign_keys=on")}, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// a pooled second connection would see its own empty in-memory db
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

// constraintDialector widens the sqlite driver's error translation:
// foreign key violations surface as raw sqlite3 errors the driver
// leaves untouched, while repositories expect gorm.ErrForeignKeyViolated.
type constraintDialector struct {
	gorm.Dialector
}

func (d constraintDialector) Translate(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
			return gorm.ErrForeignKeyViolated
		}
	}
	if translator, ok := d.Dialector.(interface{ Translate(error) error }); ok {
		return translator.Translate(err)
	}
	return err
}
