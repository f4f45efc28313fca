package configuration

import (
	"fmt"
	"os"
	"strconv"

	"content-ops/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Logger      Logger      `json:"logger"`
	Media       Media       `json:"media"`
	Platforms   Platforms   `json:"platforms"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
	Mongo Db `json:"mongo"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

type Logger struct {
	Format string `json:"format"`
}

// Media configures the resolver that turns stored media keys into URLs.
type Media struct {
	CloudinaryBaseURL string `json:"cloudinaryBaseURL"`
	CloudName         string `json:"cloudName"`
	ResolveTTLMinutes int    `json:"resolveTTLMinutes"`
}

// Platforms holds per-platform publishing credentials. Environment variables
// take precedence over the config file so production never keeps secrets on disk.
type Platforms struct {
	YouTube   YouTube   `json:"youtube"`
	Instagram Instagram `json:"instagram"`
	TikTok    TikTok    `json:"tiktok"`
	ReihTV    ReihTV    `json:"reihTV"`
}

type YouTube struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ChannelID    string `json:"channelId"`
}

type Instagram struct {
	AccessToken string `json:"accessToken"`
	AccountID   string `json:"accountId"`
}

type TikTok struct {
	AccessToken  string `json:"accessToken"`
	AdvertiserID string `json:"advertiserId"`
}

type ReihTV struct {
	APIKey string `json:"apiKey"`
	APIURL string `json:"apiURL"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initPlatforms(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}

	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Name == "" {
		if v := os.Getenv("MONGO_DB_NAME"); v != "" {
			C.Database.Mongo.Name = v
		} else {
			C.Database.Mongo.Name = "content_ops"
		}
	}

	if C.Database.MySql.Host == "" {
		C.Database.MySql.Host = os.Getenv("MYSQL_HOST")
	}
	if C.Database.MySql.Port == "" {
		if v := os.Getenv("MYSQL_PORT"); v != "" {
			C.Database.MySql.Port = v
		} else {
			C.Database.MySql.Port = "3306"
		}
	}
	if C.Database.MySql.Name == "" {
		C.Database.MySql.Name = os.Getenv("MYSQL_DB_NAME")
	}
	if C.Database.MySql.User == "" {
		C.Database.MySql.User = os.Getenv("MYSQL_USER")
	}
	if C.Database.MySql.Password == "" {
		C.Database.MySql.Password = os.Getenv("MYSQL_PASSWORD")
	}

	// Optional MSSQL config via environment variables (Azure SQL in production)
	if v := os.Getenv("MSSQL_DB_NAME"); v != "" && C.Database.Mssql.Name == "" {
		C.Database.Mssql.Name = v
	}
	if v := os.Getenv("MSSQL_HOST"); v != "" && C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = v
	}
	if v := os.Getenv("MSSQL_USER"); v != "" && C.Database.Mssql.User == "" {
		C.Database.Mssql.User = v
	}
	if v := os.Getenv("MSSQL_PASSWORD"); v != "" && C.Database.Mssql.Password == "" {
		C.Database.Mssql.Password = v
	}
	if C.Database.Mssql.Port == "" {
		if v := os.Getenv("MSSQL_PORT"); v != "" {
			C.Database.Mssql.Port = v
		} else {
			C.Database.Mssql.Port = "1433"
		}
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initPlatforms(C *Config) {
	yt := &C.Platforms.YouTube
	yt.ClientID = getConfigValue(yt.ClientID, "YOUTUBE_CLIENT_ID", "")
	yt.ClientSecret = getConfigValue(yt.ClientSecret, "YOUTUBE_CLIENT_SECRET", "")
	yt.AccessToken = getConfigValue(yt.AccessToken, "YOUTUBE_ACCESS_TOKEN", "")
	yt.RefreshToken = getConfigValue(yt.RefreshToken, "YOUTUBE_REFRESH_TOKEN", "")
	yt.ChannelID = getConfigValue(yt.ChannelID, "YOUTUBE_CHANNEL_ID", "")
	if yt.RedirectURI == "" {
		scheme := "http"
		if C.App.TLSEnabled {
			scheme = "https"
		}
		yt.RedirectURI = getConfigValue("", "YOUTUBE_REDIRECT_URL",
			fmt.Sprintf("%s://localhost:%d/auth/youtube/callback", scheme, C.App.Port))
	}

	ig := &C.Platforms.Instagram
	ig.AccessToken = getConfigValue(ig.AccessToken, "INSTAGRAM_ACCESS_TOKEN", "")
	ig.AccountID = getConfigValue(ig.AccountID, "INSTAGRAM_ACCOUNT_ID", "")

	tt := &C.Platforms.TikTok
	tt.AccessToken = getConfigValue(tt.AccessToken, "TIKTOK_ACCESS_TOKEN", "")
	tt.AdvertiserID = getConfigValue(tt.AdvertiserID, "TIKTOK_ADVERTISER_ID", "")

	tv := &C.Platforms.ReihTV
	tv.APIKey = getConfigValue(tv.APIKey, "REIMAGINEHOME_TV_API_KEY", "")
	tv.APIURL = getConfigValue(tv.APIURL, "REIMAGINEHOME_TV_API_URL", "https://api.reimaginehome.tv/v1")

	if C.Media.CloudinaryBaseURL == "" {
		C.Media.CloudinaryBaseURL = getConfigValue("", "CLOUDINARY_BASE_URL", "https://res.cloudinary.com")
	}
	if C.Media.CloudName == "" {
		C.Media.CloudName = getConfigValue("", "CLOUDINARY_CLOUD_NAME", "")
	}
	if C.Media.ResolveTTLMinutes == 0 {
		C.Media.ResolveTTLMinutes = 10
	}
}
