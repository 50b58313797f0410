package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	Upload   UploadConfig
	Momo     MomoConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours      int
	ResetTokenMinute int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type UploadConfig struct {
	Dir string
}

// MomoConfig carries the gateway credentials and endpoints. It is injected
// into the payment adapter at construction so tests can swap in fake secrets
// and a local endpoint.
type MomoConfig struct {
	PartnerCode    string
	PartnerName    string
	StoreID        string
	AccessKey      string
	SecretKey      string
	Endpoint       string
	RedirectURL    string
	IpnURL         string
	OrderInfo      string
	RequestType    string
	Lang           string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("RESET_TOKEN_MINUTES", 30)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("UPLOAD_DIR", "uploads/")
	viper.SetDefault("MOMO_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create")
	viper.SetDefault("MOMO_ORDER_INFO", "pay with MoMo")
	viper.SetDefault("MOMO_REQUEST_TYPE", "payWithMethod")
	viper.SetDefault("MOMO_LANG", "vi")
	viper.SetDefault("MOMO_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours:      viper.GetInt("SESSION_EXPIRY_HOURS"),
			ResetTokenMinute: viper.GetInt("RESET_TOKEN_MINUTES"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Upload: UploadConfig{
			Dir: viper.GetString("UPLOAD_DIR"),
		},
		Momo: MomoConfig{
			PartnerCode:    viper.GetString("MOMO_PARTNER_CODE"),
			PartnerName:    viper.GetString("MOMO_PARTNER_NAME"),
			StoreID:        viper.GetString("MOMO_STORE_ID"),
			AccessKey:      viper.GetString("MOMO_ACCESS_KEY"),
			SecretKey:      viper.GetString("MOMO_SECRET_KEY"),
			Endpoint:       viper.GetString("MOMO_ENDPOINT"),
			RedirectURL:    viper.GetString("MOMO_REDIRECT_URL"),
			IpnURL:         viper.GetString("MOMO_IPN_URL"),
			OrderInfo:      viper.GetString("MOMO_ORDER_INFO"),
			RequestType:    viper.GetString("MOMO_REQUEST_TYPE"),
			Lang:           viper.GetString("MOMO_LANG"),
			TimeoutSeconds: viper.GetInt("MOMO_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
