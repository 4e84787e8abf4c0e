package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

const secretsFile = "secrets.local.yaml"

// Loader loads predprobe.yaml, overlays secrets.local.yaml and environment
// variables, and validates the result.
type Loader struct {
	validate    *validator.Validate
	secretsName string
	loadDotenv  bool
}

type Option func(*Loader)

// WithSecretsFile overrides the secrets overlay file name.
func WithSecretsFile(name string) Option {
	return func(l *Loader) { l.secretsName = name }
}

// WithoutDotenv disables .env loading (useful for tests).
func WithoutDotenv() Option {
	return func(l *Loader) { l.loadDotenv = false }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		validate:    validator.New(),
		secretsName: secretsFile,
		loadDotenv:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ProfileLoader = (*Loader)(nil)

// LoadProfile loads the profile at path. Precedence, lowest to highest:
// built-in defaults, predprobe.yaml, secrets.local.yaml, environment
// variables (with .env loaded first when present next to the profile).
func (l *Loader) LoadProfile(path string) (domain.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "config.load_profile",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLProfile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "config.load_profile",
			Kind: domain.KindInvalidProfile,
			Path: path,
			Err:  err,
		}
	}

	p, err := MapProfile(path, dto)
	if err != nil {
		return domain.Profile{}, err
	}

	secrets, err := l.readSecrets(filepath.Join(filepath.Dir(path), l.secretsName))
	if err != nil {
		return domain.Profile{}, err
	}
	p = ApplySecrets(p, secrets)

	if l.loadDotenv {
		// Best effort; a missing .env is the normal case.
		_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	}
	p = applyEnv(p)

	if err := l.validate.Struct(p); err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "config.validate_profile",
			Kind: domain.KindInvalidProfile,
			Path: path,
			Err:  err,
		}
	}

	return p, nil
}

func (l *Loader) readSecrets(path string) (YAMLSecrets, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return YAMLSecrets{}, nil
		}
		return YAMLSecrets{}, &domain.OpError{
			Op:   "config.load_secrets",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var s YAMLSecrets
	if err := yaml.Unmarshal(b, &s); err != nil {
		return YAMLSecrets{}, &domain.OpError{
			Op:   "config.load_secrets",
			Kind: domain.KindInvalidProfile,
			Path: path,
			Err:  err,
		}
	}
	return s, nil
}

// applyEnv overrides the credential-bearing knobs from the process
// environment. These are the values that differ between developer machines.
func applyEnv(p domain.Profile) domain.Profile {
	if v := os.Getenv("PREDPROBE_BASE_URL"); v != "" {
		p.API.BaseURL = v
	}
	if v := os.Getenv("PREDPROBE_DB_HOST"); v != "" {
		p.DB.Host = v
	}
	if v := os.Getenv("PREDPROBE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.DB.Port = port
		}
	}
	if v := os.Getenv("PREDPROBE_DB_USER"); v != "" {
		p.DB.User = v
	}
	if v := os.Getenv("PREDPROBE_DB_PASSWORD"); v != "" {
		p.DB.Password = v
	}
	if v := os.Getenv("PREDPROBE_REDIS_ADDR"); v != "" {
		p.Redis.Addr = v
	}
	if v := os.Getenv("PREDPROBE_REDIS_PASSWORD"); v != "" {
		p.Redis.Password = v
	}
	return p
}
