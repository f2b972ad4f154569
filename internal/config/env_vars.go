package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	appNameVar              = "APP_NAME"
	endpointVar             = "APPWRITE_ENDPOINT"
	projectIDVar            = "APPWRITE_PROJECT_ID"
	databaseIDVar           = "APPWRITE_DATABASE_ID"
	profilesCollectionIDVar = "APPWRITE_PROFILES_COLLECTION_ID"
	logLevelVar             = "LOG_LEVEL"
	oauthCallbackPortVar    = "OAUTH_CALLBACK_PORT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Meridian Identity")
}

// GetEndpoint returns the remote service's base API URL (e.g. "https://cloud.appwrite.io/v1").
func (EnvVars) GetEndpoint() string {
	return strings.TrimRight(GetEnv(endpointVar, ""), "/")
}

func (EnvVars) GetProjectID() string {
	return GetEnv(projectIDVar, "")
}

func (EnvVars) GetDatabaseID() string {
	return GetEnv(databaseIDVar, "")
}

func (EnvVars) GetProfilesCollectionID() string {
	return GetEnv(profilesCollectionIDVar, "")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

// GetOAuthCallbackPort returns the loopback port for the browser redirect
// listener. "0" lets the OS pick a free port.
func (EnvVars) GetOAuthCallbackPort() string {
	return GetEnv(oauthCallbackPortVar, "0")
}

// Validate reports every missing required variable in a single error.
// The remote endpoint, project, database, and profiles collection are all
// startup-time fatal when absent.
func (e EnvVars) Validate() error {
	required := map[string]string{
		endpointVar:             e.GetEndpoint(),
		projectIDVar:            e.GetProjectID(),
		databaseIDVar:           e.GetDatabaseID(),
		profilesCollectionIDVar: e.GetProfilesCollectionID(),
	}

	missing := make([]string, 0, len(required))
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
