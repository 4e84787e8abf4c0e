package domain

import (
	"fmt"
	"time"
)

// Tournament values the backend accepts on leaderboard endpoints.
const (
	TournamentSpring = "SPRING"
	TournamentSummer = "SUMMER"
	TournamentGlobal = "GLOBAL"
)

// Profile is the probing target configuration loaded from predprobe.yaml.
type Profile struct {
	Name string `validate:"required"`

	API   APIProfile
	DB    DBProfile
	Redis RedisProfile

	// Logins are the credentials exercised by the login probe.
	Logins []Credential `validate:"dive"`

	Checks  ChecksProfile
	Masking MaskingProfile
	Paths   PathsProfile
}

type APIProfile struct {
	BaseURL    string        `validate:"required,url"`
	HealthPath string        `validate:"required,startswith=/"`
	Timeout    time.Duration `validate:"min=0"`
}

type DBProfile struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"min=1,max=65535"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string

	Timeout time.Duration `validate:"min=0"`
}

// DSN renders a go-sql-driver/mysql source name for the profile.
func (d DBProfile) DSN() string {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&timeout=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, timeout)
}

// Addr returns host:port for display purposes (no credentials).
func (d DBProfile) Addr() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

type RedisProfile struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"min=0"`

	// KeyPattern selects leaderboard cache keys; the backend stores
	// snapshots under leaderboard:<tournament>.
	KeyPattern string `validate:"required"`
}

type Credential struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type ChecksProfile struct {
	Tournament string `validate:"omitempty,oneof=SPRING SUMMER GLOBAL"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	UserID     uint   `validate:"min=1"`
}

type MaskingProfile struct {
	Enabled bool
}

type PathsProfile struct {
	ReportsDir string
}

// Vars exposes the profile values usable as {{placeholders}} in endpoint specs.
func (p Profile) Vars() Vars {
	return Vars{
		"base_url":   p.API.BaseURL,
		"tournament": p.Checks.Tournament,
		"limit":      fmt.Sprintf("%d", p.Checks.Limit),
		"user_id":    fmt.Sprintf("%d", p.Checks.UserID),
	}
}

// DefaultProfile mirrors the local docker-compose development setup.
func DefaultProfile() Profile {
	return Profile{
		Name: "local",
		API: APIProfile{
			BaseURL:    "http://localhost:1874",
			HealthPath: "/health",
			Timeout:    10 * time.Second,
		},
		DB: DBProfile{
			Host:    "localhost",
			Port:    3306,
			Name:    "prediction_system",
			User:    "root",
			Timeout: 5 * time.Second,
		},
		Redis: RedisProfile{
			Addr:       "localhost:6379",
			KeyPattern: "leaderboard:*",
		},
		Checks: ChecksProfile{
			Tournament: TournamentSummer,
			Limit:      5,
			UserID:     1,
		},
		Masking: MaskingProfile{Enabled: true},
		Paths: PathsProfile{
			ReportsDir: "reports",
		},
	}
}
