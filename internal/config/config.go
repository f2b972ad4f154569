package config

// Config exposes the runtime configuration consumed by the composition root.
type Config interface {
	EnvConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEndpoint() string
	GetProjectID() string
	GetDatabaseID() string
	GetProfilesCollectionID() string
	GetLogLevel() string
	GetOAuthCallbackPort() string
	Validate() error
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
