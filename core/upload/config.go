package upload

// Config holds configuration for document uploads.
type Config struct {
	// Target selects where files go: s3, nas or local.
	Target string `mapstructure:"target" default:"nas"`
	// BasePath is the folder under which each table gets its own folder. For the
	// local target it is a directory on disk.
	BasePath string `mapstructure:"base_path" default:"/knowledge-base"`
	// AllowedExtensions lists the accepted file extensions, without the dot.
	AllowedExtensions []string `mapstructure:"allowed_extensions" default:"pdf,docx,txt"`
	// MaxBytes caps the size of one uploaded file.
	MaxBytes int64 `mapstructure:"max_bytes" default:"104857600"`
}

// NASConfig holds the Synology DiskStation connection settings.
type NASConfig struct {
	Host       string `mapstructure:"host" default:""`
	Port       int    `mapstructure:"port" default:"5001"`
	Username   string `mapstructure:"username" default:""`
	Password   string `mapstructure:"password" default:""`
	Secure     bool   `mapstructure:"secure" default:"true"`
	CertVerify bool   `mapstructure:"cert_verify" default:"true"`
	// TimeoutSeconds bounds each request to the DiskStation.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}
