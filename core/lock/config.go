package lock

// Config holds configuration for the redis-backed run lock.
type Config struct {
	// Enabled switches from the in-process lock to redis.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Host is the redis host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the redis port.
	Port int `mapstructure:"port" default:"6379"`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// Database is the redis logical database.
	Database int `mapstructure:"database" default:"0"`
	// Prefix namespaces lock keys.
	Prefix string `mapstructure:"prefix" default:"catalog-sync:lock:"`
}
