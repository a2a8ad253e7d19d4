package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractJSON returns the first complete JSON value embedded in a model
// answer, dropping markdown fences and any chatter around it.
func ExtractJSON(answer string) (string, error) {
	var found string
	eachJSON(answer, func(raw json.RawMessage) bool {
		found = string(raw)
		return false
	})
	if found == "" {
		return "", fmt.Errorf("no json found in response")
	}
	return found, nil
}

// eachJSON calls fn with every top level JSON value that starts at a '{' or
// '[' of the answer, left to right, until fn returns false.
func eachJSON(answer string, fn func(raw json.RawMessage) bool) {
	for i := 0; i < len(answer); i++ {
		if answer[i] != '{' && answer[i] != '[' {
			continue
		}
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(answer[i:])).Decode(&raw); err != nil {
			continue
		}
		if !fn(raw) {
			return
		}
		i += len(raw) - 1
	}
}

// DecodeObjects reads a list of loosely typed objects, either a bare array or
// the array stored under key. Other fields of the wrapping object are ignored.
func DecodeObjects(answer, key string) ([]map[string]interface{}, error) {
	var (
		items []map[string]interface{}
		found bool
		err   = fmt.Errorf("no json found in response")
	)
	eachJSON(answer, func(raw json.RawMessage) bool {
		items = nil
		list := raw
		if raw[0] == '{' {
			wrapper := map[string]json.RawMessage{}
			if json.Unmarshal(raw, &wrapper) != nil {
				return true
			}
			if list = wrapper[key]; list == nil {
				err = fmt.Errorf("no %s in response", key)
				return true
			}
		}
		if e := json.Unmarshal(list, &items); e != nil {
			err = fmt.Errorf("decode %s: %w", key, e)
			return true
		}
		found = true
		return false
	})
	if !found {
		return nil, err
	}
	if items == nil {
		items = []map[string]interface{}{}
	}
	return items, nil
}

// Text reads a string field, formatting numbers when the model sent one.
func Text(item map[string]interface{}, key string) string {
	switch v := item[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Number reads a numeric field. Strings such as "R 1,250.50" are accepted;
// anything unreadable becomes zero.
func Number(item map[string]interface{}, key string) float64 {
	switch v := item[key].(type) {
	case float64:
		return v
	case string:
		clean := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, v)
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
