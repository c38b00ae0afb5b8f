package adapters

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	mail "github.com/xhit/go-simple-mail/v2"

	"github.com/coral-developers/coral-web/internal"
	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

var headerSanitizer = strings.NewReplacer("\r", "", "\n", " ")

// SmtpTransport delivers contact form emails through an SMTP relay.
// Every operation opens its own connection, there is no pooling and no retry.
type SmtpTransport struct {
	cfg *config.TransportConfig
}

// NewSmtpTransport creates a new SmtpTransport instance for the given resolved configuration.
func NewSmtpTransport(cfg *config.TransportConfig) *SmtpTransport {
	return &SmtpTransport{cfg: cfg}
}

// Verify connects and authenticates against the relay, sends a NOOP and closes the connection.
func (t *SmtpTransport) Verify(ctx context.Context) domain.DeliveryOutcome {
	if err := ctx.Err(); err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrVerifyFailed, err))
	}

	client, err := t.getMailServer(ctx).Connect()
	if err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrVerifyFailed, err))
	}
	defer internal.LogClose(client)

	if err := client.Noop(); err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrVerifyFailed, err))
	}

	return domain.DeliverySucceeded("")
}

// Send delivers the message in a single SMTP transaction and returns the generated Message-ID.
func (t *SmtpTransport) Send(ctx context.Context, msg domain.MailMessage) domain.DeliveryOutcome {
	if err := ctx.Err(); err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrSendFailed, err))
	}

	messageId := t.newMessageId(msg.FromEmail)
	email := t.buildMessage(msg, messageId)
	if email.Error != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrSendFailed, email.Error))
	}

	client, err := t.getMailServer(ctx).Connect()
	if err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: failed to connect to SMTP server: %w", domain.ErrSendFailed, err))
	}

	// without keep-alive the client connection is closed by Send
	if err := email.Send(client); err != nil {
		return domain.DeliveryFailed(fmt.Errorf("%w: %w", domain.ErrSendFailed, err))
	}

	return domain.DeliverySucceeded(messageId)
}

func (t *SmtpTransport) buildMessage(msg domain.MailMessage, messageId string) *mail.Email {
	email := mail.NewMSG()
	email.SetFrom(formatAddress(msg.FromName, msg.FromEmail)).
		AddTo(msg.To).
		SetSubject(headerSanitizer.Replace(msg.Subject)).
		SetBody(mail.TextPlain, msg.TextBody)

	if msg.ReplyTo != "" {
		email.SetReplyTo(msg.ReplyTo)
	}
	if msg.Bcc != "" && msg.Bcc != msg.To {
		email.AddBcc(msg.Bcc)
	}
	if msg.HtmlBody != "" {
		email.AddAlternative(mail.TextHTML, msg.HtmlBody)
	}
	email.AddHeader("Message-ID", messageId)

	return email
}

func (t *SmtpTransport) newMessageId(fromEmail string) string {
	domainPart := t.cfg.Host
	if at := strings.LastIndex(fromEmail, "@"); at >= 0 && at < len(fromEmail)-1 {
		domainPart = fromEmail[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domainPart)
}

func (t *SmtpTransport) getMailServer(ctx context.Context) *mail.SMTPServer {
	srv := mail.NewSMTPClient()

	srv.ConnectTimeout = boundedTimeout(ctx, t.cfg.ConnectTimeout, 10*time.Second)
	srv.SendTimeout = boundedTimeout(ctx, t.cfg.SendTimeout, 30*time.Second)
	srv.Host = t.cfg.Host
	srv.Port = t.cfg.Port
	srv.Username = t.cfg.Username
	srv.Password = t.cfg.Password
	srv.KeepAlive = false

	switch t.cfg.Encryption {
	case config.MailEncryptionTLS:
		srv.Encryption = mail.EncryptionSSLTLS
	case config.MailEncryptionStartTLS:
		srv.Encryption = mail.EncryptionSTARTTLS
	default: // MailEncryptionNone
		srv.Encryption = mail.EncryptionNone
	}
	srv.TLSConfig = &tls.Config{ServerName: srv.Host, InsecureSkipVerify: !t.cfg.CertValidation}
	switch t.cfg.AuthType {
	case config.MailAuthLogin:
		srv.Authentication = mail.AuthLogin
	case config.MailAuthCramMD5:
		srv.Authentication = mail.AuthCRAMMD5
	default: // MailAuthPlain
		srv.Authentication = mail.AuthPlain
	}

	return srv
}

// boundedTimeout returns the configured timeout (or the fallback), capped by the context deadline.
func boundedTimeout(ctx context.Context, configured, fallback time.Duration) time.Duration {
	timeout := configured
	if timeout <= 0 {
		timeout = fallback
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = max(remaining, time.Millisecond)
		}
	}
	return timeout
}

func formatAddress(name, address string) string {
	name = strings.TrimSpace(headerSanitizer.Replace(name))
	if name == "" {
		return address
	}
	return fmt.Sprintf("%q <%s>", name, address)
}
