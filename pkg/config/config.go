package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
	// The credential store sees one read per flow, so a small pool is plenty.
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnectTimeout  time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5s"`
}

type Redis struct {
	URL        string        `envconfig:"URL"`
	LockTTL    time.Duration `envconfig:"LOCK_TTL" default:"30s"`
	LockPrefix string        `envconfig:"LOCK_PREFIX" default:"onramp:lock:"`
}

type Kafka struct {
	Brokers string `envconfig:"BROKERS"`
	Topic   string `envconfig:"TOPIC" default:"onramp.anomalies"`

	SASLUsername  string `envconfig:"SASL_USERNAME"`
	SASLPassword  string `envconfig:"SASL_PASSWORD"`
	TLSEnabled    bool   `envconfig:"TLS_ENABLED"`
	TLSCAFile     string `envconfig:"TLS_CA_FILE"`
	TLSCertFile   string `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile    string `envconfig:"TLS_KEY_FILE"`
	TLSSkipVerify bool   `envconfig:"TLS_SKIP_VERIFY"`
}

//revive:disable
type Bridge struct {
	ApiKey              string        `envconfig:"API_KEY" validate:"required"`
	ApiUrl              string        `envconfig:"API_URL" default:"https://api.bridge.xyz" validate:"required,url"`
	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	DeveloperFeePercent string        `envconfig:"DEVELOPER_FEE_PERCENT" default:"0"`
}

// Manteca also carries the collection accounts users transfer fiat into.
type Manteca struct {
	ApiKey      string        `envconfig:"API_KEY" validate:"required"`
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.manteca.dev" validate:"required,url"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`

	ArgBankName        string `envconfig:"ARG_BANK_NAME"`
	ArgCBU             string `envconfig:"ARG_CBU"`
	ArgAlias           string `envconfig:"ARG_ALIAS"`
	ArgBeneficiaryName string `envconfig:"ARG_BENEFICIARY_NAME"`
	ArgBeneficiaryCUIT string `envconfig:"ARG_BENEFICIARY_CUIT"`

	PixKey             string `envconfig:"PIX_KEY"`
	PixBankName        string `envconfig:"PIX_BANK_NAME"`
	PixBeneficiaryName string `envconfig:"PIX_BENEFICIARY_NAME"`
}

type Persona struct {
	ApiKey             string        `envconfig:"API_KEY" validate:"required"`
	ApiUrl             string        `envconfig:"API_URL" default:"https://withpersona.com" validate:"required,url"`
	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	DocumentAttempts   int           `envconfig:"DOCUMENT_ATTEMPTS" default:"3" validate:"min=1"`
	DocumentRetryDelay time.Duration `envconfig:"DOCUMENT_RETRY_DELAY" default:"1s"`
}

//revive:enable

type Log struct {
	// Level is a level name (debug, info, warn, error).
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[onramp]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
	// RateLimit is requests per IP per second; negative disables limiting.
	RateLimit int `envconfig:"RATE_LIMIT" default:"20"`
}

// App is built once at startup and passed by pointer to every component; nothing
// mutates it afterwards.
type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Server  *Server  `envconfig:"SERVER"`
	Log     *Log     `envconfig:"LOG"`
	DB      *DB      `envconfig:"DATABASE"`
	Redis   *Redis   `envconfig:"REDIS"`
	Kafka   *Kafka   `envconfig:"KAFKA"`
	Bridge  *Bridge  `envconfig:"BRIDGE" validate:"required"`
	Manteca *Manteca `envconfig:"MANTECA" validate:"required"`
	Persona *Persona `envconfig:"PERSONA" validate:"required"`
}
