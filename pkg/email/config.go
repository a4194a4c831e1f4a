package email

// Config holds mail delivery configuration.
// Transport selects the backing implementation; provider credentials are
// optional so development environments can run with the file-based sender.
// SenderEmail and ReplyToEmail establish the outbound identity shared by
// every transport.
type Config struct {
	Transport string `env:"MAIL_TRANSPORT" envDefault:"postmark"` // postmark, smtp, or dev

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SenderEmail  string `env:"SENDER_EMAIL,required"`
	ReplyToEmail string `env:"REPLY_TO_EMAIL,required"`

	DevDir string `env:"MAIL_DEV_DIR" envDefault:"./mail-out"`
}

// SMTPConfig holds SMTP server configuration for self-hosted delivery.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	TLSMode  string `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls, tls, or plain
}
