package auth

// Config holds the authentication gate settings.
type Config struct {
	// PasswordHash is the bcrypt hash of the admin password. Generate it with
	// "kb-admin auth hash-password".
	PasswordHash string `mapstructure:"password_hash" default:""`
	// JWTSecret signs session tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// TokenTTLMinutes is how long a session token stays valid.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" default:"720"`
}
