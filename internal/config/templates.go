package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "server", "psycd":
		return serverTemplate, nil
	case "packet":
		return packetTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `id = "psycd"
addr = ":4404"
cors_origins = ["http://localhost:3000"]
# 0 disables the response size cap
max_packet_bytes = 1048576
`

const packetTemplate = `length = "check"
state_op = ""
method = "_message_public"
data = "hello"

[[routing]]
oper = ":"
name = "_source"
value = "psyc://example.org/~alice"

[[routing]]
oper = ":"
name = "_target"
value = "psyc://example.org/@room"

[[entity]]
oper = "="
name = "_nick"
value = "alice"
`
