package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

type Config struct {
	// Port Settings
	Host        string `json:"host"`        // The domain name of the server.
	ServerAddr  string `json:"serverAddr"`  // The address the server endpoint binds to.
	MetricsAddr string `json:"metricsAddr"` // The address the metric endpoint binds to.

	Auth struct {
		AccessTokenSecret  string `json:"accessTokenSecret"`
		RefreshTokenSecret string `json:"refreshTokenSecret"`
	} `json:"auth"`

	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"TimeZone"`
		// Optional read replica hosts, routed via dbresolver.
		Replicas []string `json:"replicas"`
	} `json:"postgres"`

	SMTP struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		User   string `json:"user"`
		Pass   string `json:"password"`
		Sender string `json:"sender"`
	} `json:"smtp"`

	Webhook struct {
		URL     string `json:"url"`     // Endpoint receiving task event payloads. Empty disables delivery.
		Secret  string `json:"secret"`  // Shared secret sent as X-Sitegrid-Signature.
		Timeout int    `json:"timeout"` // Per-delivery timeout in seconds.
	} `json:"webhook"`

	Sweeper struct {
		// Cron spec for the orphan dependency sweep. Empty disables the job.
		Spec string `json:"spec"`
	} `json:"sweeper"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file. In debug mode the path can be
// overridden with SITEGRID_DEBUG_CONFIG_PATH, otherwise the ConfigMap
// mount at /etc/config/config.yaml is used.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("SITEGRID_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("SITEGRID_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	err := readConfig(configPath, config)
	if err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
