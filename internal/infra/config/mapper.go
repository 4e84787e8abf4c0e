package config

import (
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

// MapProfile applies parsed YAML values on top of the default profile.
func MapProfile(path string, dto YAMLProfile) (domain.Profile, error) {
	p := domain.DefaultProfile()
	y := dto.Predprobe

	if y.Name != "" {
		p.Name = y.Name
	}

	if y.API.BaseURL != "" {
		p.API.BaseURL = y.API.BaseURL
	}
	if y.API.HealthPath != "" {
		p.API.HealthPath = y.API.HealthPath
	}
	if y.API.Timeout != "" {
		d, err := parseDuration(path, "api.timeout", y.API.Timeout)
		if err != nil {
			return domain.Profile{}, err
		}
		p.API.Timeout = d
	}

	if y.DB.Host != "" {
		p.DB.Host = y.DB.Host
	}
	if y.DB.Port != 0 {
		p.DB.Port = y.DB.Port
	}
	if y.DB.Name != "" {
		p.DB.Name = y.DB.Name
	}
	if y.DB.User != "" {
		p.DB.User = y.DB.User
	}
	if y.DB.Password != "" {
		p.DB.Password = y.DB.Password
	}
	if y.DB.Timeout != "" {
		d, err := parseDuration(path, "db.timeout", y.DB.Timeout)
		if err != nil {
			return domain.Profile{}, err
		}
		p.DB.Timeout = d
	}

	if y.Redis.Addr != "" {
		p.Redis.Addr = y.Redis.Addr
	}
	if y.Redis.Password != "" {
		p.Redis.Password = y.Redis.Password
	}
	if y.Redis.DB != 0 {
		p.Redis.DB = y.Redis.DB
	}
	if y.Redis.KeyPattern != "" {
		p.Redis.KeyPattern = y.Redis.KeyPattern
	}

	for _, l := range y.Logins {
		p.Logins = append(p.Logins, domain.Credential{
			Username: l.Username,
			Password: l.Password,
		})
	}

	if y.Checks.Tournament != "" {
		p.Checks.Tournament = y.Checks.Tournament
	}
	if y.Checks.Limit != 0 {
		p.Checks.Limit = y.Checks.Limit
	}
	if y.Checks.UserID != 0 {
		p.Checks.UserID = y.Checks.UserID
	}

	if y.Masking.Enabled != nil {
		p.Masking.Enabled = *y.Masking.Enabled
	}
	if y.Paths.ReportsDir != "" {
		p.Paths.ReportsDir = y.Paths.ReportsDir
	}

	return p, nil
}

// ApplySecrets overlays secrets.local.yaml values onto the profile.
func ApplySecrets(p domain.Profile, s YAMLSecrets) domain.Profile {
	sec := s.Secrets

	if sec.DBPassword != "" {
		p.DB.Password = sec.DBPassword
	}
	if sec.RedisPassword != "" {
		p.Redis.Password = sec.RedisPassword
	}

	if len(sec.Logins) > 0 {
		for i, cred := range p.Logins {
			if pw, ok := sec.Logins[cred.Username]; ok {
				p.Logins[i].Password = pw
			}
		}
	}

	return p
}

func parseDuration(path, field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "config.parse." + field,
			Kind: domain.KindInvalidProfile,
			Path: path,
			Err:  err,
		}
	}
	return d, nil
}
