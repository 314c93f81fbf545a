package config

// mergeConfigs merges override configuration into base. Zero values in
// override leave the base value untouched.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	if override.Device.Index != nil {
		index := *override.Device.Index
		result.Device.Index = &index
	}

	if override.Sampling.Interval != "" {
		result.Sampling.Interval = override.Sampling.Interval
	}
	if override.Sampling.Capacity != 0 {
		result.Sampling.Capacity = override.Sampling.Capacity
	}

	if override.Export.Dir != "" {
		result.Export.Dir = override.Export.Dir
	}
	if override.Export.Prefix != "" {
		result.Export.Prefix = override.Export.Prefix
	}
	if override.Export.Session != nil {
		session := *override.Export.Session
		result.Export.Session = &session
	}

	result.Keys = mergeKeys(result.Keys, override.Keys)

	// Merge extensions
	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := merged[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						merged[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeKeys(base, override KeysConfig) KeysConfig {
	result := base

	if len(override.Next) > 0 {
		result.Next = override.Next
	}
	if len(override.Stop) > 0 {
		result.Stop = override.Stop
	}
	if len(override.Help) > 0 {
		result.Help = override.Help
	}

	return result
}
