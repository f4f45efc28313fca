package configuration

import (
	"bufio"
	"os"
	"strings"

	"content-ops/infrastructure/logger"
)

// LoadEnvFromFile seeds the process environment from KEY=VALUE files, typically
// config.env and .env in the working directory. Platform secrets arrive this
// way in local runs. Variables already present in the environment win; missing
// files are skipped silently so production images need not ship any.
func LoadEnvFromFile(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		loaded := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			idx := strings.Index(line, "=")
			if idx == -1 {
				continue
			}
			key := strings.TrimSpace(line[:idx])
			if key == "" {
				continue
			}
			// Values may be quoted (KEY="VALUE" or KEY='VALUE')
			val := strings.Trim(strings.TrimSpace(line[idx+1:]), "\"'")
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
				loaded++
			}
		}
		_ = f.Close()
		logger.GetLogger().WithFields(map[string]interface{}{
			"file":   path,
			"loaded": loaded,
		}).Info("Environment file applied")
	}
}
