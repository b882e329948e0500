package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/matplanerare/matplanerare/internal/config"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	RemoteStore  string            `json:"remoteStore,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the remote document store when one is configured
	if cfg.SyncRemoteURL != "" {
		if err := utils.PingRemoteStore(cfg.SyncRemoteURL); err != nil {
			result.Status = "unhealthy"
			result.RemoteStore = "unreachable"
			result.Details["remote_store_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Remote store ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; remote store ping failed: %v", err)
			}
			log.Printf("Health check failed - remote store ping: %v", err)
		} else {
			result.RemoteStore = "ok"
			result.Details["remote_store_url"] = cfg.SyncRemoteURL
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
