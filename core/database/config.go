package database

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"catalog"`
	// PoolSize is the number of pooled connections. 0 disables pooling and
	// opens a fresh connection per request.
	PoolSize int `mapstructure:"pool_size" default:"10"`
	// Autocommit enables autocommit on checked-out connections.
	Autocommit bool `mapstructure:"autocommit" default:"true"`
	// TimeoutSeconds is the connect/read/write timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
