package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	Storage  StorageConfig
	Maps     MapsConfig
	Locator  LocatorConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	Address       string
	LookupAddress string
	Topic         string
	Channel       string
}

// StorageConfig contains object storage configuration for catalog sources
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	StoreFile string
	ZipFile   string
}

// MapsConfig contains the distance matrix and directions API configuration
type MapsConfig struct {
	MatrixURL     string
	DirectionsURL string
	APIKey        string
	Timeout       int // seconds
	MaxRetries    int
	RetryDelayMs  int
}

// LocatorConfig contains locator service specific configuration
type LocatorConfig struct {
	CandidateCount int  // Number of coarse candidates sent to refinement
	ReloadInterval int  // Seconds between snapshot reloads, 0 disables
	MemoTTL        int  // Seconds to cache refinement results, 0 disables
	MemoPrecision  uint // Geohash precision for refinement memo keys
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
