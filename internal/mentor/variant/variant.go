// Package variant describes the interchangeable flavours of the chat:
// header and welcome copy, an optional greeting, and the reply template
// used by the simulated responder.
package variant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/mentorchat/internal/mentor"
	"github.com/longkey1/mentorchat/internal/mentor/reply"
)

// ErrNotFound is returned when no built-in or file variant has the requested name.
var ErrNotFound = errors.New("variant not found")

// Variant represents the structure of a TOML variant file
type Variant struct {
	Name        string         `toml:"-"`
	Path        string         `toml:"-"` // Source file, empty for built-ins
	Title       string         `toml:"title"`
	Description string         `toml:"description"`
	Heading     string         `toml:"heading"`     // Welcome heading shown while the conversation is empty
	Welcome     string         `toml:"welcome"`     // Welcome body shown while the conversation is empty
	Placeholder string         `toml:"placeholder"` // Input placeholder
	Greeting    string         `toml:"greeting,omitempty"`
	Reply       string         `toml:"reply"` // Reply template with {{input}} and custom {{key}} placeholders
	ReplyDelay  *time.Duration `toml:"reply_delay,omitempty"`
}

// LoadFile loads a variant file and returns its contents
func LoadFile(filePath string) (*Variant, error) {
	var v Variant
	if _, err := toml.DecodeFile(filePath, &v); err != nil {
		return nil, fmt.Errorf("error decoding variant file: %v", err)
	}
	v.Path = filePath
	return &v, nil
}

// Validate checks that the variant can produce replies.
func (v *Variant) Validate() error {
	if strings.TrimSpace(v.Reply) == "" {
		return fmt.Errorf("variant %q: reply template cannot be empty", v.Name)
	}
	if v.ReplyDelay != nil && *v.ReplyDelay < 0 {
		return fmt.Errorf("variant %q: reply_delay cannot be negative", v.Name)
	}
	return nil
}

// Renderer returns the reply template bound to vars.
// "input" is reserved for the user's message.
func (v *Variant) Renderer(vars map[string]string) (reply.RenderFunc, error) {
	if _, ok := vars["input"]; ok {
		return nil, fmt.Errorf("'input' is a reserved keyword and cannot be used as a key")
	}

	template := v.Reply
	for key, value := range vars {
		template = strings.ReplaceAll(template, fmt.Sprintf("{{%s}}", key), value)
	}
	return reply.Template(template), nil
}

// Delay returns the variant's reply delay, or fallback when unset.
func (v *Variant) Delay(fallback time.Duration) time.Duration {
	if v.ReplyDelay == nil {
		return fallback
	}
	return *v.ReplyDelay
}

// ParseVars processes "key:value" arguments into a map
func ParseVars(args []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, arg := range args {
		key, value, err := mentor.ParseVar(arg)
		if err != nil {
			return nil, err
		}
		if key == "input" {
			return nil, fmt.Errorf("'input' is a reserved keyword and cannot be used as a key")
		}
		result[key] = value
	}
	return result, nil
}
