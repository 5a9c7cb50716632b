package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	KafkaHost            string
	RedisAddr            string
	GatewayBaseURL       string
	GatewayAPIKey        string
	GatewayWebhookSecret string
	StorageBaseURL       string
	StorageAPIKey        string
	CatalogBaseURL       string
	GigCacheTTL          string
	PaymentProvider      string
}
