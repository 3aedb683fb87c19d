package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel    string `env:"LOG_LEVEL" envDefault:"DEBUG"`
		Environment string `env:"ENVIRONMENT" envDefault:"development"`

		Auth   AuthProperties       `envPrefix:"ADMIN_"`
		S3     S3Properties         `envPrefix:"S3_"`
		Server HttpServerProperties `envPrefix:"HTTP_"`
		Store  StoreProperties      `envPrefix:"STORE_"`
	}

	AuthProperties struct {
		PIN        string        `env:"PIN" envDefault:"1234"`
		Secret     string        `env:"SECRET" envDefault:"change-this-secret"`
		CookieName string        `env:"COOKIE" envDefault:"admin_token"`
		TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"inkcraft"`
		Port        string        `env:"PORT" envDefault:"3000"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	S3Properties struct {
		Host        string        `env:"HOST"`
		AccessKey   string        `env:"ACCESS_KEY"`
		SecretKey   string        `env:"SECRET_KEY"`
		Bucket      string        `env:"BUCKET" envDefault:"app"`
		Folder      string        `env:"FOLDER" envDefault:"inkcraft"`
		UseSSL      bool          `env:"USE_SSL" envDefault:"true"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	StoreProperties struct {
		PublicDir  string `env:"PUBLIC_DIR" envDefault:"./public"`
		UploadsDir string `env:"UPLOADS_DIR" envDefault:"./public/uploads"`
		DataDir    string `env:"DATA_DIR" envDefault:"./data"`
	}
)

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}

// UseRemote reports whether remote object storage credentials are present.
// Their presence switches the asset store to the minio backend.
func (p *Properties) UseRemote() bool {
	return p.S3.Host != "" && p.S3.AccessKey != "" && p.S3.SecretKey != ""
}

// Production controls the Secure flag on the session cookie.
func (p *Properties) Production() bool {
	return p.Environment == "production"
}
