package util

import (
	"os"
	"strings"
)

// GetEnvironmentVariables returns the process environment as a map, limited to
// the keys starting with prefix when one is given
func GetEnvironmentVariables(prefix string) map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}
