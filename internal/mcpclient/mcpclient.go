// Package mcpclient registers the ambrogio MCP server in the config files of
// MCP client applications (Claude Code, Claude Desktop, Cursor).
package mcpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/ambrogio-dev/ambrogio/internal/atomicfile"
)

// ServerName is the key of the entry under "mcpServers".
const ServerName = "ambrogio"

const serversKey = "mcpServers"

// Client identifies an MCP client application.
type Client string

const (
	ClaudeCode    Client = "claude-code"
	ClaudeDesktop Client = "claude-desktop"
	Cursor        Client = "cursor"
)

// AllClients returns all supported MCP clients.
func AllClients() []Client {
	return []Client{ClaudeCode, ClaudeDesktop, Cursor}
}

// ParseClient validates a client name.
func ParseClient(name string) (Client, error) {
	c := Client(name)
	if slices.Contains(AllClients(), c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown client %q (supported: claude-code, claude-desktop, cursor)", name)
}

// ServerEntry is one server under "mcpServers".
type ServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Status reports whether the ambrogio server is configured for a client.
type Status struct {
	Client     Client       `json:"client"`
	ConfigPath string       `json:"config_path"`
	Exists     bool         `json:"exists"`
	Installed  bool         `json:"installed"`
	Entry      *ServerEntry `json:"entry,omitempty"`
}

// ConfigPath returns the config file path for client.
// Pass "" as homeDir to use os.UserHomeDir.
func ConfigPath(client Client, homeDir string) (string, error) {
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}

	switch client {
	case ClaudeCode:
		return filepath.Join(homeDir, ".claude.json"), nil
	case ClaudeDesktop:
		if runtime.GOOS == "darwin" {
			return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
		}
		return filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json"), nil
	case Cursor:
		return filepath.Join(homeDir, ".cursor", "mcp.json"), nil
	}
	return "", fmt.Errorf("unknown client: %s", client)
}

// ResolveCommand returns the absolute path of the running binary, or
// "ambrogio" when it cannot be determined.
func ResolveCommand() string {
	exe, err := os.Executable()
	if err != nil {
		return ServerName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

// NewServerEntry builds the entry that runs "ambrogio serve". A non-empty
// todosPath pins the server to that file.
func NewServerEntry(command, todosPath string) ServerEntry {
	if command == "" {
		command = ResolveCommand()
	}
	args := []string{"serve"}
	if todosPath != "" {
		args = append(args, "--file", todosPath)
	}
	return ServerEntry{Command: command, Args: args}
}

// InstallResult describes what Install changed.
type InstallResult int

const (
	Installed InstallResult = iota
	Updated
	AlreadyInstalled
)

func (r InstallResult) String() string {
	switch r {
	case Installed:
		return "installed"
	case Updated:
		return "updated"
	case AlreadyInstalled:
		return "already_installed"
	}
	return "unknown"
}

// Install adds or replaces the ambrogio entry. Other servers and settings in
// the file are kept.
func Install(configPath string, entry ServerEntry) (InstallResult, error) {
	doc, _, err := load(configPath)
	if err != nil {
		return 0, err
	}
	servers := serverMap(doc, true)

	result := Installed
	if raw, ok := servers[ServerName]; ok {
		if existing, ok := decodeEntry(raw); ok && existing.Command == entry.Command && slices.Equal(existing.Args, entry.Args) {
			return AlreadyInstalled, nil
		}
		result = Updated
	}

	servers[ServerName] = entry
	return result, save(configPath, doc)
}

// Remove deletes the ambrogio entry and reports whether it was there.
func Remove(configPath string) (bool, error) {
	doc, exists, err := load(configPath)
	if err != nil || !exists {
		return false, err
	}
	servers := serverMap(doc, false)
	if _, ok := servers[ServerName]; !ok {
		return false, nil
	}

	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(doc, serversKey)
	}
	return true, save(configPath, doc)
}

// Inspect reads the client's config and reports the ambrogio entry.
func Inspect(client Client, configPath string) (*Status, error) {
	status := &Status{Client: client, ConfigPath: configPath}
	doc, exists, err := load(configPath)
	if err != nil {
		return nil, err
	}
	status.Exists = exists

	if raw, ok := serverMap(doc, false)[ServerName]; ok {
		status.Installed = true
		if entry, ok := decodeEntry(raw); ok {
			status.Entry = &entry
		}
	}
	return status, nil
}

// load parses the JSON config at path. A missing file is an empty document.
func load(path string) (map[string]interface{}, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]interface{}{}, false, nil
		}
		return nil, false, fmt.Errorf("read config: %w", err)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, true, nil
}

// serverMap returns the "mcpServers" object, replacing a missing or
// malformed one when create is set.
func serverMap(doc map[string]interface{}, create bool) map[string]interface{} {
	if m, ok := doc[serversKey].(map[string]interface{}); ok {
		return m
	}
	m := map[string]interface{}{}
	if create {
		doc[serversKey] = m
	}
	return m
}

func decodeEntry(raw interface{}) (ServerEntry, bool) {
	data, err := json.Marshal(raw)
	if err != nil {
		return ServerEntry{}, false
	}
	var entry ServerEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ServerEntry{}, false
	}
	return entry, true
}

func save(path string, doc map[string]interface{}) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	out = append(out, '\n')
	return atomicfile.WriteFile(path, out, 0)
}
