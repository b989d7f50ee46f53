package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}
	Mail struct {
		PostmarkServerToken  string
		PostmarkAccountToken string
		SenderEmail          string
	}
	Queue struct {
		PullIntervalSeconds   int
		MaxRetries            int
		ReminderIntervalHours int
	}
	Log struct {
		Level string
	}
	GinMode string
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("TASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "taskuser")
	v.SetDefault("database.password", "taskpassword")
	v.SetDefault("database.name", "user_tasks")
	v.SetDefault("mail.postmarkservertoken", "")
	v.SetDefault("mail.postmarkaccounttoken", "")
	v.SetDefault("mail.senderemail", "noreply@example.com")
	v.SetDefault("queue.pullintervalseconds", 1)
	v.SetDefault("queue.maxretries", 3)
	v.SetDefault("queue.reminderintervalhours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("ginmode", "debug")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), `"'`)
		if key == "" || os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
	}
}
