package config

// YAMLProfile mirrors the predprobe.yaml file layout. All fields are
// optional; missing values fall back to the defaults in domain.DefaultProfile.
type YAMLProfile struct {
	Predprobe struct {
		Name string `yaml:"name"`

		API struct {
			BaseURL    string `yaml:"base_url"`
			HealthPath string `yaml:"health_path"`
			Timeout    string `yaml:"timeout"`
		} `yaml:"api"`

		DB struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Name     string `yaml:"name"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Timeout  string `yaml:"timeout"`
		} `yaml:"db"`

		Redis struct {
			Addr       string `yaml:"addr"`
			Password   string `yaml:"password"`
			DB         int    `yaml:"db"`
			KeyPattern string `yaml:"key_pattern"`
		} `yaml:"redis"`

		Logins []struct {
			Username string `yaml:"username"`
			Password string `yaml:"password"`
		} `yaml:"logins"`

		Checks struct {
			Tournament string `yaml:"tournament"`
			Limit      int    `yaml:"limit"`
			UserID     uint   `yaml:"user_id"`
		} `yaml:"checks"`

		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Paths struct {
			ReportsDir string `yaml:"reports_dir"`
		} `yaml:"paths"`
	} `yaml:"predprobe"`
}

// YAMLSecrets mirrors the optional secrets.local.yaml overlay. Values here
// win over predprobe.yaml so passwords stay out of version control.
type YAMLSecrets struct {
	Secrets struct {
		DBPassword    string            `yaml:"db_password"`
		RedisPassword string            `yaml:"redis_password"`
		Logins        map[string]string `yaml:"logins"`
	} `yaml:"secrets"`
}
