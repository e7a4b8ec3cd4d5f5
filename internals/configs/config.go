package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	if Sheets().Configured() {
		log.Println("✅ Google Sheets persistence configured")
	} else {
		log.Println("⚠️ Google Sheets not configured, submissions fall back to CSV")
	}
	if Vipps().Configured() {
		log.Println("✅ Vipps credentials loaded")
	} else {
		log.Println("⚠️ Vipps not configured, payment initiation disabled")
	}
	if Mail().Configured() {
		log.Println("✅ SMTP mailer configured")
	} else {
		log.Println("⚠️ SMTP mailer not configured, thank-you mails disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GOOGLE SHEETS
// =======================
type SheetsConfig struct {
	SpreadsheetID   string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

func Sheets() SheetsConfig {
	return SheetsConfig{
		SpreadsheetID:   GetEnv("SHEET_ID"),
		ClientEmail:     GetEnv("GOOGLE_CLIENT_EMAIL"),
		PrivateKey:      GetEnv("GOOGLE_PRIVATE_KEY"),
		CredentialsFile: GetEnv("GOOGLE_CREDENTIALS_FILE"),
	}
}

// Configured reports whether both a target sheet and a credential
// source are present. Either the two-variable pair or a key file works.
func (c SheetsConfig) Configured() bool {
	if c.SpreadsheetID == "" {
		return false
	}
	if c.ClientEmail != "" && c.PrivateKey != "" {
		return true
	}
	return c.CredentialsFile != ""
}

// =======================
// SMTP MAILER
// =======================
type MailConfig struct {
	Service  string
	Host     string
	Port     int
	User     string
	Password string
}

// Known EMAIL_SERVICE shortcuts. Explicit SMTP_HOST/SMTP_PORT wins.
var serviceHosts = map[string]struct {
	host string
	port int
}{
	"gmail":   {"smtp.gmail.com", 587},
	"outlook": {"smtp-mail.outlook.com", 587},
}

func Mail() MailConfig {
	port := 587
	if p, err := strconv.Atoi(GetEnv("SMTP_PORT", "587")); err == nil {
		port = p
	}
	return MailConfig{
		Service:  strings.ToLower(GetEnv("EMAIL_SERVICE")),
		Host:     GetEnv("SMTP_HOST"),
		Port:     port,
		User:     GetEnv("EMAIL_USER"),
		Password: GetEnv("EMAIL_PASSWORD"),
	}
}

func (c MailConfig) Configured() bool {
	if c.User == "" || c.Password == "" {
		return false
	}
	if c.Host != "" {
		return true
	}
	_, ok := serviceHosts[c.Service]
	return ok
}

// Resolve returns the SMTP host and port, applying the service shortcut
// when no explicit host is set.
func (c MailConfig) Resolve() (string, int) {
	if c.Host != "" {
		return c.Host, c.Port
	}
	if s, ok := serviceHosts[c.Service]; ok {
		return s.host, s.port
	}
	return "", 0
}

// =======================
// VIPPS
// =======================
type VippsConfig struct {
	ClientID        string
	ClientSecret    string
	SubscriptionKey string
	MerchantSerial  string
	ReturnURL       string
	TestMode        bool
}

func Vipps() VippsConfig {
	msn := GetEnv("VIPPS_MERCHANT_SERIAL_NUMBER")
	if msn == "" {
		msn = GetEnv("VIPPS_MSN")
	}
	test := false
	if v := GetEnv("VIPPS_TEST_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			test = b
		}
	}
	if strings.EqualFold(GetEnv("VIPPS_ENV"), "test") {
		test = true
	}
	return VippsConfig{
		ClientID:        GetEnv("VIPPS_CLIENT_ID"),
		ClientSecret:    GetEnv("VIPPS_CLIENT_SECRET"),
		SubscriptionKey: GetEnv("VIPPS_SUBSCRIPTION_KEY"),
		MerchantSerial:  msn,
		ReturnURL:       GetEnv("VIPPS_RETURN_URL", "https://dansebakken.no/bekreftelse"),
		TestMode:        test,
	}
}

func (c VippsConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" &&
		c.SubscriptionKey != "" && c.MerchantSerial != ""
}

func (c VippsConfig) BaseURL() string {
	if c.TestMode {
		return "https://apitest.vipps.no"
	}
	return "https://api.vipps.no"
}
