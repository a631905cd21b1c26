package configuration

import (
	"reflect"
	"testing"
)

type localConfiguration struct {
	Version       Version `yaml:"version"`
	Formatter     string  `yaml:"formatter,omitempty"`
	Notifications []Notif `yaml:"notifications,omitempty"`
}

type Notif struct {
	Name string `yaml:"name"`
}

const testConfig = `version: "0.1"
formatter: "text"
notifications:
  - name: "foo"
  - name: "bar"
  - name: "car"`

func parseLocal(t *testing.T, raw string) localConfiguration {
	t.Helper()
	config := localConfiguration{}
	p := NewParser("elixir", []VersionedParseInfo{
		{
			Version: "0.1",
			ParseAs: reflect.TypeOf(config),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				return c, nil
			},
		},
	})
	if err := p.Parse([]byte(raw), &config); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return config
}

func TestParserOverwriteInitializedField(t *testing.T) {
	t.Setenv("ELIXIR_FORMATTER", "json")

	config := parseLocal(t, testConfig)

	want := localConfiguration{
		Version:   "0.1",
		Formatter: "json",
		Notifications: []Notif{
			{Name: "foo"}, {Name: "bar"}, {Name: "car"},
		},
	}
	if !reflect.DeepEqual(config, want) {
		t.Fatalf("got %+v, want %+v", config, want)
	}
}

func TestParseOverwriteSliceEntries(t *testing.T) {
	t.Setenv("ELIXIR_FORMATTER", "json")
	t.Setenv("ELIXIR_NOTIFICATIONS_0_NAME", "foo")
	t.Setenv("ELIXIR_NOTIFICATIONS_1_NAME", "bar")

	const raw = `version: "0.1"
formatter: "text"
notifications:
  - name: "val1"
  - name: "val2"
  - name: "car"`

	config := parseLocal(t, raw)

	want := localConfiguration{
		Version:   "0.1",
		Formatter: "json",
		Notifications: []Notif{
			{Name: "foo"}, {Name: "bar"}, {Name: "car"},
		},
	}
	if !reflect.DeepEqual(config, want) {
		t.Fatalf("got %+v, want %+v", config, want)
	}
}
