package config

import (
	"os"
	"path/filepath"
	"strings"
)

const profileTemplate = `# predprobe profile — local verification of the prediction-system backend.
# Secrets belong in secrets.local.yaml (gitignored), not here.
predprobe:
  name: local
  api:
    base_url: http://localhost:1874
    health_path: /health
    timeout: 10s
  db:
    host: localhost
    port: 3306
    name: prediction_system
    user: root
    timeout: 5s
  redis:
    addr: localhost:6379
    key_pattern: "leaderboard:*"
  logins:
    - username: root
      password: changeme
  checks:
    tournament: SUMMER
    limit: 5
    user_id: 1
  masking:
    enabled: true
  paths:
    reports_dir: reports
`

const secretsTemplate = `# Local-only secrets overlay. Never commit this file.
secrets:
  db_password: ""
  redis_password: ""
  logins: {}
    # root: root123456
`

// Scaffold writes a starter profile, a secrets overlay stub and a guarding
// .gitignore into root. Existing files are kept unless force is set.
func Scaffold(root string, force bool) error {
	root = filepath.Clean(root)

	dirs := []string{
		filepath.Join(root, "reports"),
		filepath.Join(root, ".predprobe", "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	files := []struct {
		name    string
		content string
		mode    os.FileMode
	}{
		{ProfileFile, profileTemplate, 0o644},
		{secretsFile, secretsTemplate, 0o600},
	}

	for _, f := range files {
		dst := filepath.Join(root, f.name)
		if !force {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		if err := os.WriteFile(dst, []byte(f.content), f.mode); err != nil {
			return err
		}
	}

	return nil
}

func ensureGitignore(root string) error {
	const header = "# predprobe"
	entries := []string{
		"reports/",
		".predprobe/",
		"secrets.local.yaml",
		".env",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(existing)
	if !strings.HasSuffix(existing, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(header + "\n")
	for _, m := range missing {
		sb.WriteString(m + "\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
