package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"protect-cli/internal/auth"
	"protect-cli/internal/client"
	"protect-cli/internal/footage"
)

const (
	// EnvPrefix is prepended to every key when read from the environment,
	// e.g. PROTECT_ADDRESS or PROTECT_NOT_UNIFI_OS.
	EnvPrefix = "PROTECT"

	fileName = ".protect-cli"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyAddress      = "address"
	KeyPort         = "port"
	KeyNotUnifiOS   = "not_unifi_os"
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeyVerifySSL    = "verify_ssl"
	KeyTimeout      = "timeout"
	KeyCameras      = "cameras"
	KeyLogLevel     = "log_level"
	KeySessionToken = "session_token"
	KeyCSRFToken    = "csrf_token"

	// The NVR a saved session was issued by
	KeySessionAddress = "session_address"
	KeySessionPort    = "session_port"
	KeySessionLegacy  = "session_legacy"
)

// Settings is the resolved configuration of a single invocation.
type Settings struct {
	Address    string
	Port       int
	NotUnifiOS bool
	Username   string
	Password   string
	VerifySSL  bool
	Timeout    time.Duration
	Cameras    string
	LogLevel   string
	Session    auth.Session

	// SessionServer is the NVR that issued Session.
	SessionServer client.ClientConfig
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddress, "unifi")
	v.SetDefault(KeyPort, 0)
	v.SetDefault(KeyNotUnifiOS, false)
	v.SetDefault(KeyVerifySSL, false)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyCameras, footage.SelectAll)
	v.SetDefault(KeyLogLevel, "info")
}

// InitConfig reads in config file and ENV variables if set.
// A missing config file is not an error.
func InitConfig(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating home directory: %w", err)
		}

		// Search config in home directory with name ".protect-cli" (without extension).
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(fileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile != "" && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Load resolves the settings from v.
func Load(v *viper.Viper) Settings {
	return Settings{
		Address:    strings.TrimSpace(v.GetString(KeyAddress)),
		Port:       v.GetInt(KeyPort),
		NotUnifiOS: v.GetBool(KeyNotUnifiOS),
		Username:   v.GetString(KeyUsername),
		Password:   v.GetString(KeyPassword),
		VerifySSL:  v.GetBool(KeyVerifySSL),
		Timeout:    v.GetDuration(KeyTimeout),
		Cameras:    v.GetString(KeyCameras),
		LogLevel:   v.GetString(KeyLogLevel),
		Session: auth.Session{
			Token:     v.GetString(KeySessionToken),
			CSRFToken: v.GetString(KeyCSRFToken),
			Legacy:    v.GetBool(KeySessionLegacy),
		},
		SessionServer: client.ClientConfig{
			Address:    strings.TrimSpace(v.GetString(KeySessionAddress)),
			Port:       v.GetInt(KeySessionPort),
			NotUnifiOS: v.GetBool(KeySessionLegacy),
		},
	}
}

// SavedSession returns the stored session if it was issued by the server
// the current settings point at.
func (s Settings) SavedSession() (auth.Session, bool) {
	if !s.Session.Valid() || s.SessionServer.Address == "" {
		return auth.Session{}, false
	}
	current := s.ClientConfig()
	if s.SessionServer.BaseURL() != current.BaseURL() || s.SessionServer.NotUnifiOS != current.NotUnifiOS {
		return auth.Session{}, false
	}
	return s.Session, true
}

// ClientConfig returns the connection parameters for the Protect client.
func (s Settings) ClientConfig() client.ClientConfig {
	return client.ClientConfig{
		Address:    s.Address,
		Port:       s.Port,
		NotUnifiOS: s.NotUnifiOS,
		Username:   s.Username,
		Password:   s.Password,
		VerifySSL:  s.VerifySSL,
		Timeout:    s.Timeout,
	}
}

// HasCredentials reports whether a fresh login is possible without prompting.
func (s Settings) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// SaveSession updates the config file with the new session and the NVR it
// belongs to. Values that only came from flags or the environment, such as
// the password, are not written.
func SaveSession(v *viper.Viper, s Settings, session auth.Session) error {
	out := viper.New()
	out.SetConfigType("yaml")

	path := v.ConfigFileUsed()
	if path != "" {
		out.SetConfigFile(path)
		// Keep whatever the user already put in the file
		if err := out.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating home directory: %w", err)
		}
		path = filepath.Join(home, fileName+".yaml")
	}

	out.Set(KeyAddress, s.Address)
	out.Set(KeyPort, s.Port)
	out.Set(KeyNotUnifiOS, s.NotUnifiOS)
	out.Set(KeyUsername, s.Username)
	out.Set(KeySessionToken, session.Token)
	out.Set(KeyCSRFToken, session.CSRFToken)
	out.Set(KeySessionAddress, s.Address)
	out.Set(KeySessionPort, s.Port)
	out.Set(KeySessionLegacy, session.Legacy)

	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	// The file holds a session token
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restricting config permissions: %w", err)
	}
	return nil
}
