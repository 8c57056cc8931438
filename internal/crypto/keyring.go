package crypto

// Keyring holds the key that encrypts the invoice database. Implementations
// are platform-specific; the fallback reads an environment variable.
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "invoicepro"
	KeyName     = "db-encryption-key"
)

// NewKeyring returns the keyring implementation for the current platform
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
