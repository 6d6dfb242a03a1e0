package integration

import (
	"testing"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/migration"
	"github.com/atxtraffic/camera-proxy-go/test/testutil"
	_ "github.com/go-sql-driver/mysql"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()

	db := testDB.DB

	// Run migrations
	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Give some time for migration to finalize
	time.Sleep(100 * time.Millisecond)

	// Verify both tables exist and are empty
	for _, table := range []string{"captures", "detections"} {
		recs := 0
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&recs); err != nil {
			t.Fatalf("failed to query migrated table %s: %v", table, err)
		}
		if recs != 0 {
			t.Errorf("expected 0 rows in %s after migration, got %d", table, recs)
		}
	}
}
