// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"shiftboard-go/internal/db"
	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	shiftdomain "shiftboard-go/internal/domain/shift"
	swapdomain "shiftboard-go/internal/domain/swap"
	userdomain "shiftboard-go/internal/domain/user"
	wagedomain "shiftboard-go/internal/domain/wage"
)

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&employeedomain.Employee{},
		&userdomain.User{},
		&groupdomain.Group{},
		&groupdomain.Membership{},
		&shiftdomain.Shift{},
		&shiftdomain.Request{},
		&shiftdomain.Response{},
		&swapdomain.Swap{},
		&swapdomain.History{},
		&wagedomain.WageRate{},
	}
}

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := gormDB.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}
	return gormDB
}
