package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// OptionsFromMap decodes loosely typed overrides such as config-file sections or tool
// arguments. Keys are matched ignoring case and underscores, so both "weekNumberStart" and
// "week_number_start" are accepted. Unrecognised keys are returned as warnings.
func OptionsFromMap(m map[string]any) (Options, []string, error) {
	var opts Options
	var warnings []string

	for key, raw := range m {
		var err error
		switch normalizeKey(key) {
		case "yearnumberstart":
			opts.YearNumberStart, err = intValue(key, raw)
		case "yearnumberend":
			opts.YearNumberEnd, err = intValue(key, raw)
		case "weeknumberstart":
			opts.WeekNumberStart, err = intValue(key, raw)
		case "weeknumberend":
			opts.WeekNumberEnd, err = intValue(key, raw)
		case "onlychampionship":
			opts.OnlyChampionship, err = boolValue(key, raw)
		case "onlypostseason":
			opts.OnlyPostSeason, err = boolValue(key, raw)
		case "onlyregularseason":
			opts.OnlyRegularSeason, err = boolValue(key, raw)
		default:
			warnings = append(warnings, fmt.Sprintf("keyword argument '%s' is not used", key))
		}
		if err != nil {
			return Options{}, nil, err
		}
	}

	sort.Strings(warnings)
	return opts, warnings, nil
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func boolValue(key string, raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, invalid(fmt.Sprintf("'%s' must be type 'bool'", key))
	}
	return b, nil
}

func intValue(key string, raw any) (*int, error) {
	switch v := raw.(type) {
	case int:
		return Int(v), nil
	case int32:
		return Int(int(v)), nil
	case int64:
		return Int(int(v)), nil
	case float64:
		if v == math.Trunc(v) {
			return Int(int(v)), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return Int(int(n)), nil
		}
	}
	return nil, invalid(fmt.Sprintf("'%s' must be type 'int'", key))
}
