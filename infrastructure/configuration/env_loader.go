package configuration

import (
	"bufio"
	"os"
	"strings"
)

// LoadEnvFromFile merges KEY=VALUE pairs from each given file into the
// process environment. Missing files are skipped and keys already present in
// the OS environment always win. Deployments use these files to hand the
// tracker its secrets outside the JSON config: CRON_SECRET, SECRET_KEY,
// YOUTUBE_API_KEY and the DB_* / MSSQL_* credentials.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
		_ = f.Close()
	}
}

// parseEnvLine accepts the dotenv subset the deployment files use: blank
// lines, # comments, an optional "export " prefix, and single or double
// quoted values.
func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	val = strings.Trim(strings.TrimSpace(val), "\"'")
	return key, val, true
}
