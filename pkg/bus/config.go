package bus

import (
	"github.com/spf13/viper"
)

// Config carries the tool/handler settings loaded from file and env.
type Config struct {
	Device          string `mapstructure:"device"`
	BaudRate        int    `mapstructure:"baud_rate"`
	ModifiedLayout  bool   `mapstructure:"modified_layout"`
	MaxResyncSkip   int    `mapstructure:"max_resync_skip"`
	CaptureFile     string `mapstructure:"capture_file"`
	CompressCapture bool   `mapstructure:"compress_capture"`
	APIListenAddr   string `mapstructure:"api_listen_address"`
	LogDB           string `mapstructure:"log_db"`
}

func DefaultConfig() *Config {
	return &Config{
		Device:        "/dev/ttyUSB0",
		BaudRate:      115200, // JVS runs 115200 8N1
		MaxResyncSkip: DefaultMaxResyncSkip,
		APIListenAddr: ":7880",
		LogDB:         "jvsdump.db",
	}
}

// LoadConfig loads configuration from file and environment, file values
// overriding the defaults and JVS_* environment variables overriding both.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("jvsdump")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/jvs-go/")
	viper.AddConfigPath("$HOME/.jvs-go")
	viper.SetEnvPrefix("JVS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file is fine; defaults plus env apply.
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
