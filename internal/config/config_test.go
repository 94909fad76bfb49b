package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		envAPIKey         string
		wantErr           bool
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "defaults with API key from environment",
			configContent: `wrong_key:
  some_value: test
`,
			envAPIKey: "test-api-key",
			want: &Config{
				Gemini: GeminiConfig{
					APIKey:        "test-api-key",
					Model:         "gemini-2.0-flash",
					APIVersion:    "v1beta",
					RetryAttempts: 3,
				},
				Generation: GenerationConfig{
					Temperature:     0.7,
					MaxOutputTokens: 1024,
				},
				Normalizer: NormalizerConfig{
					Mode:              "rich",
					MinSentenceLength: 20,
				},
			},
		},
		{
			name: "config file with custom values",
			configContent: `gemini:
  model: gemini-2.5-pro
  api_version: v1
  retry_attempts: 5
generation:
  temperature: 1.2
  max_output_tokens: 2048
normalizer:
  mode: minimal
  min_sentence_length: 40
`,
			envAPIKey: "test-api-key",
			want: &Config{
				Gemini: GeminiConfig{
					APIKey:        "test-api-key",
					Model:         "gemini-2.5-pro",
					APIVersion:    "v1",
					RetryAttempts: 5,
				},
				Generation: GenerationConfig{
					Temperature:     1.2,
					MaxOutputTokens: 2048,
				},
				Normalizer: NormalizerConfig{
					Mode:              "minimal",
					MinSentenceLength: 40,
				},
			},
		},
		{
			name: "API key from config file",
			configContent: `gemini:
  api_key: file-api-key
`,
			want: &Config{
				Gemini: GeminiConfig{
					APIKey:        "file-api-key",
					Model:         "gemini-2.0-flash",
					APIVersion:    "v1beta",
					RetryAttempts: 3,
				},
				Generation: GenerationConfig{
					Temperature:     0.7,
					MaxOutputTokens: 1024,
				},
				Normalizer: NormalizerConfig{
					Mode:              "rich",
					MinSentenceLength: 20,
				},
			},
		},
		{
			name: "explicit config file path",
			configContent: `gemini:
  model: gemini-explicit
`,
			useExplicitPath: true,
			envAPIKey:       "test-api-key",
			want: &Config{
				Gemini: GeminiConfig{
					APIKey:        "test-api-key",
					Model:         "gemini-explicit",
					APIVersion:    "v1beta",
					RetryAttempts: 3,
				},
				Generation: GenerationConfig{
					Temperature:     0.7,
					MaxOutputTokens: 1024,
				},
				Normalizer: NormalizerConfig{
					Mode:              "rich",
					MinSentenceLength: 20,
				},
			},
		},
		{
			name: "missing API key",
			configContent: `gemini:
  model: gemini-2.0-flash
`,
			wantErr: true,
			wantErrorContains: []string{
				"api_key is a required field",
			},
		},
		{
			name: "invalid YAML format",
			configContent: `gemini:
  model: gemini-2.0-flash
  invalid yaml format here [[[
`,
			envAPIKey: "test-api-key",
			wantErr:   true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "invalid normalizer mode",
			configContent: `normalizer:
  mode: verbose
`,
			envAPIKey: "test-api-key",
			wantErr:   true,
			wantErrorContains: []string{
				"mode must be one of [minimal rich]",
			},
		},
		{
			name: "invalid temperature",
			configContent: `generation:
  temperature: 3.5
`,
			envAPIKey: "test-api-key",
			wantErr:   true,
			wantErrorContains: []string{
				"temperature must be 2 or less",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("GEMINI_API_KEY", tt.envAPIKey)

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
				require.NoError(t, err)

				originalDir, err := os.Getwd()
				require.NoError(t, err)
				defer func() {
					err := os.Chdir(originalDir)
					require.NoError(t, err)
				}()

				err = os.Chdir(tempDir)
				require.NoError(t, err)
				configPath = ""
			}

			loader, err := NewLoader(configPath)
			require.NoError(t, err)

			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				var configErr *ConfigurationError
				require.ErrorAs(t, err, &configErr)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
