// Package interaction carries the correlation data a chat-bot command needs
// to find its way back to the originating conversation. The platform keeps
// no server-side session between the command, the form submit, and the form
// cancel, so the context travels with the form itself, encoded into its
// opaque carry-field.
package interaction

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// MaxEncodedLen is the platform's carry-field size limit.
const MaxEncodedLen = 3000

// Context threads one slash command through its later stateless callbacks.
type Context struct {
	PersonID    string `json:"person_id"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name,omitempty"`
	ThreadTS    string `json:"thread_ts"`
}

// Encode serializes the context to an opaque string suitable for the
// platform's carry-field. Callers must not rely on the format beyond
// Decode(Encode(c)) == c.
func Encode(c Context) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	encoded := base64.URLEncoding.EncodeToString(raw)
	if len(encoded) > MaxEncodedLen {
		return "", fmt.Errorf("encoded interaction context is %d bytes, limit is %d", len(encoded), MaxEncodedLen)
	}
	return encoded, nil
}

// Decode parses an opaque string produced by Encode. Empty or malformed
// input is an error; a callback without a decodable context cannot be
// correlated and must be dropped by the caller.
func Decode(s string) (Context, error) {
	if s == "" {
		return Context{}, fmt.Errorf("empty interaction context")
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return Context{}, fmt.Errorf("malformed interaction context: %w", err)
	}
	var c Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return Context{}, fmt.Errorf("malformed interaction context: %w", err)
	}
	return c, nil
}
