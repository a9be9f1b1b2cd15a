package trigger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/trigger/pkg/trigger"
	"github.com/randalmurphal/trigger/pkg/trigger/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		wantName    string
		wantEnabled bool
		wantOpts    int
	}{
		{
			name:        "empty keeps defaults",
			data:        nil,
			wantName:    "",
			wantEnabled: true,
			wantOpts:    0,
		},
		{
			name:        "name and disabled",
			data:        map[string]any{"name": "greeter", "enabled": false},
			wantName:    "greeter",
			wantEnabled: false,
			wantOpts:    2,
		},
		{
			name:        "observability flags",
			data:        map[string]any{"metrics": false, "tracing": false},
			wantName:    "",
			wantEnabled: true,
			wantOpts:    2,
		},
		{
			name:        "wrong type falls back to default",
			data:        map[string]any{"enabled": "nope"},
			wantName:    "",
			wantEnabled: true,
			wantOpts:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := trigger.OptionsFromConfig(config.New(tt.data))
			assert.Len(t, opts, tt.wantOpts)

			client := trigger.New(opts...)
			assert.Equal(t, tt.wantName, client.Name())
			assert.Equal(t, tt.wantEnabled, client.Enabled())
		})
	}
}

func TestNewFromFile_YAML(t *testing.T) {
	path := writeFile(t, "trigger.yaml", "name: greeter\nenabled: false\ntracing: false\n")

	client, err := trigger.NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "greeter", client.Name())
	assert.True(t, client.Disabled())
}

func TestNewFromFile_JSON(t *testing.T) {
	path := writeFile(t, "trigger.json", `{"name": "greeter", "enabled": true}`)

	client, err := trigger.NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "greeter", client.Name())
	assert.True(t, client.Enabled())
}

func TestNewFromFile_OptionsOverrideFile(t *testing.T) {
	path := writeFile(t, "trigger.yml", "name: from-file\nenabled: false\n")

	client, err := trigger.NewFromFile(path, trigger.WithName("override"), trigger.WithEnabled(true))
	require.NoError(t, err)

	assert.Equal(t, "override", client.Name())
	assert.True(t, client.Enabled())
}

func TestNewFromFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := trigger.NewFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "trigger.toml", "name = 'x'")
		_, err := trigger.NewFromFile(path)
		assert.ErrorContains(t, err, "unsupported config file extension")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "trigger.yaml", "name: [unterminated")
		_, err := trigger.NewFromFile(path)
		assert.ErrorContains(t, err, "parse yaml")
	})
}

func TestNewFromFile_EnvironmentOverride(t *testing.T) {
	path := writeFile(t, "trigger.yaml", "name: greeter\nenabled: true\n")
	t.Setenv("TRIGGER_ENABLED", "false")
	t.Setenv("TRIGGER_NAME", "from-env")

	client, err := trigger.NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", client.Name())
	assert.True(t, client.Disabled())
}

func TestNewFromFile_EnvironmentOnly(t *testing.T) {
	t.Setenv("TRIGGER_NAME", "2024")
	t.Setenv("TRIGGER_ENABLED", "0")

	client, err := trigger.NewFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "2024", client.Name(), "numeric names stay strings")
	assert.True(t, client.Disabled())
}

func TestLoadSettings_EnvironmentTyping(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want trigger.Settings
	}{
		{
			name: "defaults",
			env:  nil,
			want: trigger.Settings{Enabled: true},
		},
		{
			name: "numeric booleans",
			env:  map[string]string{"TRIGGER_ENABLED": "0", "TRIGGER_METRICS": "1", "TRIGGER_TRACING": "1"},
			want: trigger.Settings{Enabled: false, Metrics: true, Tracing: true},
		},
		{
			name: "numeric name",
			env:  map[string]string{"TRIGGER_NAME": "42"},
			want: trigger.Settings{Name: "42", Enabled: true},
		},
		{
			name: "re-enable",
			env:  map[string]string{"TRIGGER_ENABLED": "1"},
			want: trigger.Settings{Enabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := trigger.LoadSettings(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSettings_FileKeepsValuesWithoutEnvironment(t *testing.T) {
	path := writeFile(t, "trigger.yaml", "name: greeter\nenabled: false\nmetrics: true\n")

	got, err := trigger.LoadSettings(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, trigger.Settings{Name: "greeter", Enabled: false, Metrics: true}, got)
}

func TestLoadSettings_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("TRIGGER_ENABLED", "sometimes")

	_, err := trigger.LoadSettings(context.Background(), "")
	assert.Error(t, err)

	_, err = trigger.NewFromFile("")
	assert.Error(t, err)
}

func TestSettings_Options(t *testing.T) {
	settings := trigger.Settings{Name: "greeter", Enabled: false}

	client := trigger.New(settings.Options()...)

	assert.Equal(t, "greeter", client.Name())
	assert.True(t, client.Disabled())
}
