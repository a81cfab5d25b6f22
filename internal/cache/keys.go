package cache

import "strings"

const (
	GlobalKeyPrefix = "tudman"
)

// GenerateCacheKey builds "tudman:<service>:<objectType>:<identifier>".
// Any paramsKey values are joined by "_" and appended as one more segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}
