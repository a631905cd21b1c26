package configuration

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
version: 0.1
log:
  level: info
  formatter: text
project:
  name: linux
  dataDir: /var/lib/elixir/linux
  dtsComp: true
collaborator:
  command: /usr/local/libexec/elixir/collaborator
  blobTimeout: 45s
  args: ["/srv/linux.git"]
store:
  engine: badger
  parameters:
    valuelogfilesize: 1073741824
updater:
  workers: 4
health:
  storeCheckInterval: 15s
  collaboratorCheckInterval: 20s
`

func TestParseFillsDefaultsAndFields(t *testing.T) {
	config, err := Parse(bytes.NewReader([]byte(sampleConfig)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if config.Project.Name != "linux" {
		t.Errorf("Project.Name = %q, want linux", config.Project.Name)
	}
	if !config.Project.DTSComp {
		t.Errorf("Project.DTSComp = false, want true")
	}
	if config.Collaborator.BlobTimeout != 45*time.Second {
		t.Errorf("Collaborator.BlobTimeout = %v, want 45s", config.Collaborator.BlobTimeout)
	}
	if len(config.Collaborator.Args) != 1 || config.Collaborator.Args[0] != "/srv/linux.git" {
		t.Errorf("Collaborator.Args = %v", config.Collaborator.Args)
	}
	if config.Store.Engine != "badger" {
		t.Errorf("Store.Engine = %q, want badger", config.Store.Engine)
	}
	if config.Updater.Workers != 4 {
		t.Errorf("Updater.Workers = %d, want 4", config.Updater.Workers)
	}
	if config.Health.StoreCheckInterval != 15*time.Second {
		t.Errorf("Health.StoreCheckInterval = %v, want 15s", config.Health.StoreCheckInterval)
	}
	if config.Health.CollaboratorCheckInterval != 20*time.Second {
		t.Errorf("Health.CollaboratorCheckInterval = %v, want 20s", config.Health.CollaboratorCheckInterval)
	}
}

func TestParseAppliesDefaultsWhenOmitted(t *testing.T) {
	const minimal = `
version: 0.1
project:
  name: linux
  dataDir: /var/lib/elixir/linux
collaborator:
  command: /usr/local/libexec/elixir/collaborator
store:
  engine: badger
`
	config, err := Parse(bytes.NewReader([]byte(minimal)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info (default)", config.Log.Level)
	}
	if config.Collaborator.BlobTimeout != 60*time.Second {
		t.Errorf("Collaborator.BlobTimeout = %v, want 60s (default)", config.Collaborator.BlobTimeout)
	}
	if config.Health.StoreCheckInterval != 10*time.Second {
		t.Errorf("Health.StoreCheckInterval = %v, want 10s (default)", config.Health.StoreCheckInterval)
	}
	if config.Health.CollaboratorCheckInterval != 30*time.Second {
		t.Errorf("Health.CollaboratorCheckInterval = %v, want 30s (default)", config.Health.CollaboratorCheckInterval)
	}
}

func TestParseRejectsMissingProjectName(t *testing.T) {
	const bad = `
version: 0.1
project:
  dataDir: /var/lib/elixir/linux
collaborator:
  command: /usr/local/libexec/elixir/collaborator
store:
  engine: badger
`
	_, err := Parse(bytes.NewReader([]byte(bad)))
	if err == nil || !strings.Contains(err.Error(), "project name") {
		t.Fatalf("expected missing project name error, got %v", err)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	const bad = `
version: 9.9
project:
  name: linux
  dataDir: /var/lib/elixir/linux
`
	_, err := Parse(bytes.NewReader([]byte(bad)))
	if err == nil {
		t.Fatalf("expected unsupported version error")
	}
}

func TestLoglevelRejectsInvalidValue(t *testing.T) {
	const bad = `
version: 0.1
log:
  level: verbose
project:
  name: linux
  dataDir: /var/lib/elixir/linux
collaborator:
  command: /usr/local/libexec/elixir/collaborator
store:
  engine: badger
`
	_, err := Parse(bytes.NewReader([]byte(bad)))
	if err == nil || !strings.Contains(err.Error(), "invalid loglevel") {
		t.Fatalf("expected invalid loglevel error, got %v", err)
	}
}
