package db

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "samaan-clean.db"))

	assertTableHasColumns(t, database, "users", "id", "email", "password_hash", "role", "must_change_password", "created_at")
	assertTableHasColumns(t, database, "calorie_intakes", "id", "date", "exercise", "weight")
	assertTableHasColumns(t, database, "meal_details", "id", "calorie_intake_id", "meal_type", "calories", "protein", "fiber", "carbs")
	assertTableHasColumns(t, database, "weight_loss_goals", "id", "goal_lbs_per_week", "start_date", "end_date", "rmr")
	assertTableHasColumns(t, database, "stocks", "id", "user_id", "symbol", "name", "quantity", "purchase_price", "sold_price")
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesLegacyUsersTable(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "samaan-legacy.db")
	seedLegacyUsersSchema(t, databasePath)

	database := openSQLiteForMigrationBootstrapTest(t, databasePath)

	assertTableHasColumns(t, database, "users", "must_change_password")
	assertAllEmbeddedMigrationsApplied(t, database)

	var migrated struct {
		Email              string `gorm:"column:email"`
		MustChangePassword bool   `gorm:"column:must_change_password"`
	}
	if err := database.Table("users").Select("email", "must_change_password").Where("email = ?", "legacy@example.com").First(&migrated).Error; err != nil {
		t.Fatalf("load migrated legacy user: %v", err)
	}
	if migrated.MustChangePassword {
		t.Fatal("expected must_change_password default to be false")
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "samaan-idempotent.db")

	first := openSQLiteForMigrationBootstrapTest(t, databasePath)
	firstRecords := loadMigrationRecords(t, first)
	closeDatabase(t, first)

	second := openSQLiteForMigrationBootstrapTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, second)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to stay stable, first=%v second=%v", firstRecords, secondRecords)
	}
}

func TestLoadEmbeddedMigrationsHasMatchingDialectVersions(t *testing.T) {
	sqliteVersions := embeddedMigrationVersionsForTest(t, "sqlite")
	postgresVersions := embeddedMigrationVersionsForTest(t, "postgres")

	if len(sqliteVersions) == 0 {
		t.Fatal("expected sqlite migrations to be embedded")
	}
	if !reflect.DeepEqual(sqliteVersions, postgresVersions) {
		t.Fatalf("expected dialects to share versions, sqlite=%v postgres=%v", sqliteVersions, postgresVersions)
	}
}

func TestSplitSQLStatementsDropsEmptyParts(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INT);\n\n ; CREATE TABLE b (id INT);")
	if len(statements) != 2 {
		t.Fatalf("splitSQLStatements() len = %d, want 2", len(statements))
	}
	if statements[1] != "CREATE TABLE b (id INT)" {
		t.Fatalf("unexpected second statement %q", statements[1])
	}
}

type migrationRecord struct {
	Version string `gorm:"column:version"`
	Name    string `gorm:"column:name"`
}

func openSQLiteForMigrationBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

func closeDatabase(t *testing.T, database *gorm.DB) {
	t.Helper()

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql db: %v", err)
	}
}

func seedLegacyUsersSchema(t *testing.T, databasePath string) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	defer closeDatabase(t, database)

	statements := []string{
		`CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'owner',
  created_at DATETIME NOT NULL
)`,
		`INSERT INTO users (email, password_hash, role, created_at) VALUES ('legacy@example.com', 'hash', 'owner', CURRENT_TIMESTAMP)`,
	}
	for _, statement := range statements {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("seed legacy schema: %v", err)
		}
	}
}

func assertTableHasColumns(t *testing.T, database *gorm.DB, tableName string, columns ...string) {
	t.Helper()

	existing := loadTableColumns(t, database, tableName)
	for _, column := range columns {
		if _, ok := existing[column]; !ok {
			t.Fatalf("expected column %s.%s to exist, got %v", tableName, column, existing)
		}
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	records := loadMigrationRecords(t, database)
	applied := make([]string, 0, len(records))
	for _, record := range records {
		applied = append(applied, record.Version)
	}

	expected := embeddedMigrationVersionsForTest(t, "sqlite")
	if !reflect.DeepEqual(applied, expected) {
		t.Fatalf("applied migrations = %v, want %v", applied, expected)
	}
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(`SELECT version, name FROM schema_migrations ORDER BY version ASC`).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", tableName, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}

func embeddedMigrationVersionsForTest(t *testing.T, dialect string) []string {
	t.Helper()

	migrations, err := loadEmbeddedMigrations(dialect)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}

	versions := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		versions = append(versions, migration.Version)
	}
	return versions
}
