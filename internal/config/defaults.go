package config

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		switch v := schema.Default.(type) {
		case []string:
			defaults[key] = append([]string(nil), v...)
		case map[string]interface{}:
			cp := make(map[string]interface{}, len(v))
			for k, val := range v {
				cp[k] = val
			}
			defaults[key] = cp
		default:
			defaults[key] = v
		}
	}
	return defaults
}
