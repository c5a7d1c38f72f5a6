package generate

import (
	"fmt"
	"os"
	"strings"
)

// DefaultKeyFileName is the key file kept in the state directory,
// so a key entered once is reused on later runs.
const DefaultKeyFileName = "openai_api_key.txt"

// LoadKey resolves the API key: explicit value wins, then the
// OPENAI_API_KEY environment variable, then the key file. Returns ""
// when no key is available anywhere.
func LoadKey(explicit, keyFile string) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if k := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); k != "" {
		return k
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveKey persists the API key for later runs. The file is written
// owner-readable only.
func SaveKey(keyFile, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("refusing to save empty api key")
	}
	if err := os.WriteFile(keyFile, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}
