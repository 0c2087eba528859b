// Package mentor provides the core types shared by the mentoring chat.
// Subpackages build on these: conversation (state and submit flow),
// reply (reply generators), variant (copy and reply templates),
// session (saved transcripts) and config (user configuration).
package mentor

import (
	"fmt"
	"strings"
)

// ParseRole parses a role string.
//
// Example:
//
//	role, err := ParseRole("assistant")
//	// role = RoleAssistant
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("invalid role: %s (expected user or assistant)", s)
	}
}

// ParseVar parses a template variable in "key:value" format.
// Returns (key, value, error).
//
// Example:
//
//	key, value, err := ParseVar("name:Taro")
//	// key = "name", value = "Taro"
func ParseVar(arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
		arg = strings.Trim(arg, `"`)
	}

	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid variable format: %s (expected format: key:value)", arg)
	}

	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmt.Errorf("variable key cannot be empty")
	}

	// Remove escape characters from value
	value = strings.ReplaceAll(value, `\:`, ":")
	value = strings.ReplaceAll(value, `\"`, `"`)

	return key, value, nil
}
