package integration_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/matplanerare/matplanerare/internal/config"
	"github.com/matplanerare/matplanerare/internal/database"
	"github.com/matplanerare/matplanerare/internal/services"
)

// TestWithMySQL tests the document store against a real MySQL container
func TestWithMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mysql:8.4"
	}

	mysqlContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	defer func() {
		if err := mysqlContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MySQL container: %v", err)
		}
	}()

	host, err := mysqlContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mysqlContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Ping with the raw driver until the server accepts connections
	dsn := fmt.Sprintf("testuser:testpass@tcp(%s:%s)/testdb", host, port.Port())
	waitForMySQL(t, dsn)

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("PartialWriteRoundTrip", func(t *testing.T) {
		testPartialWriteRoundTrip(t, db)
	})

	t.Run("LegacyMigration", func(t *testing.T) {
		testLegacyMigration(t, db)
	})
}

// waitForMySQL retries a raw-driver ping until the container answers
func waitForMySQL(t *testing.T, dsn string) {
	t.Helper()
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := sql.Open("mysql", dsn)
		if err == nil {
			err = conn.Ping()
			conn.Close()
			if err == nil {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Fatal("MySQL container never became reachable")
}

// testPartialWriteRoundTrip writes documents piecemeal and reads the
// aggregate back
func testPartialWriteRoundTrip(t *testing.T, db *gorm.DB) {
	writes := []services.UpdateInput{
		{
			Collection: services.CollectionUsers, DocID: "anna",
			Data: map[string]any{"passwordHash": "abc"},
		},
		{
			Collection: services.CollectionRecipes, DocID: "recipe_1",
			Data: map[string]any{
				"id": "recipe_1", "name": "Tacos", "originalPortions": 4,
				"ingredients": "400 g färs", "instructions": "Stek", "createdBy": "anna",
			},
		},
		{
			Collection: services.CollectionMealPlans, DocID: "anna",
			Data: map[string]any{
				"2024-W10": map[string]any{"fredag": map[string]any{"middag": "recipe_1"}},
			},
		},
		{
			Collection: services.CollectionSettings, DocID: services.SettingsDoc,
			Data: map[string]any{"adminUser": "anna"},
		},
		// Second partial write against the same plan document must merge
		{
			Collection: services.CollectionMealPlans, DocID: "anna",
			Data: map[string]any{
				"2024-W10": map[string]any{"lördag": map[string]any{"middag": "recipe_1"}},
			},
		},
	}
	for _, in := range writes {
		if err := services.UpdateDocument(db, in); err != nil {
			t.Fatalf("Failed to apply write %s/%s: %v", in.Collection, in.DocID, err)
		}
	}

	data, err := services.LoadAppData(db)
	if err != nil {
		t.Fatalf("Failed to load aggregate: %v", err)
	}

	if data.Users["anna"].PasswordHash != "abc" {
		t.Error("Expected user document to round-trip")
	}
	if data.Recipes["recipe_1"].Name != "Tacos" {
		t.Error("Expected recipe document to round-trip")
	}
	if data.AdminUser == nil || *data.AdminUser != "anna" {
		t.Error("Expected adminUser to round-trip")
	}
	week := data.MealPlans["anna"]["2024-W10"]
	if week["fredag"]["middag"] == nil || week["lördag"]["middag"] == nil {
		t.Errorf("Expected both planned days to survive the merge, got %v", week)
	}

	// Delete and verify the no-op on repeat
	del := services.UpdateInput{
		Collection: services.CollectionUsers, DocID: "anna", IsDelete: true,
	}
	if err := services.UpdateDocument(db, del); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}
	if err := services.UpdateDocument(db, del); err != nil {
		t.Fatalf("Expected repeated delete to be a no-op, got: %v", err)
	}
}

// testLegacyMigration seeds the single legacy document and verifies fan-out
func testLegacyMigration(t *testing.T, db *gorm.DB) {
	legacy := services.UpdateInput{
		Collection: services.LegacyCollection,
		DocID:      services.LegacyDoc,
		Data: map[string]any{
			"users":     map[string]any{"mormor": map[string]any{"passwordHash": ""}},
			"recipes":   map[string]any{},
			"mealPlans": map[string]any{},
			"adminUser": "mormor",
		},
	}
	if err := services.UpdateDocument(db, legacy); err != nil {
		t.Fatalf("Failed to seed legacy document: %v", err)
	}

	data, err := services.LoadAppData(db)
	if err != nil {
		t.Fatalf("Failed to load aggregate: %v", err)
	}
	if _, ok := data.Users["mormor"]; !ok {
		t.Error("Expected migrated user to be present")
	}
	if data.AdminUser == nil || *data.AdminUser != "mormor" {
		t.Error("Expected migrated adminUser")
	}
}
