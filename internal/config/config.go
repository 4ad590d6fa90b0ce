package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	SlackBotToken      string
	SlackSigningSecret string
	WorkerPoolSize     int
	WorkerQueueLen     int
}

var instance *Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("no .env file loaded: %s", err.Error())
		}

		instance.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get database url")
		}

		instance.SlackBotToken = getEnv("SLACK_BOT_TOKEN", "")
		if instance.SlackBotToken == "" {
			logrus.Fatal("could not get slack bot token")
		}

		instance.SlackSigningSecret = getEnv("SLACK_SIGNING_SECRET", "")
		if instance.SlackSigningSecret == "" {
			logrus.Fatal("could not get slack signing secret")
		}

		instance.WorkerPoolSize = int(getEnvAsInt("WORKER_POOL_SIZE", 4))
		instance.WorkerQueueLen = int(getEnvAsInt("WORKER_QUEUE_LEN", 64))
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
