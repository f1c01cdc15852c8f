package secrets

import (
	"os"
	"strings"
)

// APIKeyName is the name the SDK API key is stored under.
const APIKeyName = "sdk"

// Getter is the read side of Store.
type Getter interface {
	Get(name string) (string, error)
}

// ResolveAPIKey picks the SDK API key: the env var named envVar first, then
// the secrets store, then the configured fallback. An empty result means the
// app runs without a key.
func ResolveAPIKey(envVar string, store Getter, fallback string) string {
	if envVar = strings.TrimSpace(envVar); envVar != "" {
		if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
			return v
		}
	}
	if store != nil {
		if k, err := store.Get(APIKeyName); err == nil && strings.TrimSpace(k) != "" {
			return strings.TrimSpace(k)
		}
	}
	return strings.TrimSpace(fallback)
}
