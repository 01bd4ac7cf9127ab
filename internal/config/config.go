package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:8000"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"storefront.db"`

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Mail     Mail     `envPrefix:"EMAIL_"`
}

type Razorpay struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID         string `env:"KEY_ID"`
	KeySecret     string `env:"KEY_SECRET"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Mail struct {
	Host       string `env:"SMTP_HOST"`
	Port       string `env:"SMTP_PORT" envDefault:"587"`
	User       string `env:"USER"`
	Pass       string `env:"PASS"`
	AdminEmail string `env:"ADMIN"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) Production() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"3000"`
}
