package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	ServerURL     string `mapstructure:"server_url"`
	UseLocal      bool   `mapstructure:"use_local"`
	Output        string `mapstructure:"output"`
	Timeout       string `mapstructure:"timeout"`
	Width         int    `mapstructure:"width"`
	LlamaURL      string `mapstructure:"llama_url"`
	LlamaModel    string `mapstructure:"llama_model"`
	LlamaAPIKey   string `mapstructure:"llama_api_key"`
	ColorHeading1 string `mapstructure:"color_heading1"`
	ColorHeading2 string `mapstructure:"color_heading2"`
	ColorHeading3 string `mapstructure:"color_heading3"`
	ColorBullet   string `mapstructure:"color_bullet"`
	ColorError    string `mapstructure:"color_error"`
	LogLevel      string `mapstructure:"log_level"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. An explicit file path takes
// precedence over the search path.
func Init(file string) error {
	viper.SetDefault("server_url", "http://localhost:8000")
	viper.SetDefault("use_local", false)
	viper.SetDefault("output", "print")
	viper.SetDefault("timeout", "5m")
	viper.SetDefault("width", 80)
	viper.SetDefault("llama_url", "")
	viper.SetDefault("llama_model", "")
	viper.SetDefault("llama_api_key", "")
	viper.SetDefault("color_heading1", "212") // Pink
	viper.SetDefault("color_heading2", "39")  // Blue
	viper.SetDefault("color_heading3", "36")  // Cyan
	viper.SetDefault("color_bullet", "241")   // Gray
	viper.SetDefault("color_error", "196")    // Red
	viper.SetDefault("log_level", "info")

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("summd")
		viper.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "summd"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SUMMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetServerURL returns the summarization server base URL
func GetServerURL() string {
	return viper.GetString("server_url")
}

// GetUseLocal returns whether the server should use local inference
func GetUseLocal() bool {
	return viper.GetBool("use_local")
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetTimeout returns the stream timeout, falling back to five minutes when
// the configured value does not parse
func GetTimeout() time.Duration {
	d, err := time.ParseDuration(viper.GetString("timeout"))
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// GetWidth returns the render width
func GetWidth() int {
	if w := viper.GetInt("width"); w > 0 {
		return w
	}
	return 80
}

// GetLlamaURL returns the OpenAI-compatible endpoint for direct mode
func GetLlamaURL() string {
	return viper.GetString("llama_url")
}

// GetLlamaModel returns the model name for direct mode
func GetLlamaModel() string {
	return viper.GetString("llama_model")
}

// GetLlamaAPIKey returns the bearer key for direct mode
func GetLlamaAPIKey() string {
	return viper.GetString("llama_api_key")
}

// GetColorHeading returns the color for a heading level
func GetColorHeading(level int) string {
	switch level {
	case 1:
		return viper.GetString("color_heading1")
	case 2:
		return viper.GetString("color_heading2")
	default:
		return viper.GetString("color_heading3")
	}
}

// GetColorBullet returns the color for list markers
func GetColorBullet() string {
	return viper.GetString("color_bullet")
}

// GetColorError returns the color for error messages
func GetColorError() string {
	return viper.GetString("color_error")
}

// GetLogLevel returns the configured log level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetServerURL sets the server URL at runtime
func SetServerURL(url string) {
	viper.Set("server_url", url)
	C.ServerURL = url
}

// SetUseLocal sets the inference toggle at runtime
func SetUseLocal(local bool) {
	viper.Set("use_local", local)
	C.UseLocal = local
}
