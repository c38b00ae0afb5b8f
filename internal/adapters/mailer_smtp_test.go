package adapters

import (
	"bytes"
	"context"
	"net"
	netmail "net/mail"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

// smtpSession is what a scripted relay captured from one client connection.
type smtpSession struct {
	commands   []string
	from       string
	recipients []string
	data       []byte
}

// scriptedRelay is a minimal plain-text SMTP server that accepts every command.
type scriptedRelay struct {
	listener net.Listener

	mu       sync.Mutex
	sessions []smtpSession
}

func newScriptedRelay(t *testing.T) *scriptedRelay {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := &scriptedRelay{listener: listener}
	go r.serve()
	t.Cleanup(func() {
		_ = listener.Close()
	})

	return r
}

func (r *scriptedRelay) transportConfig(t *testing.T) *config.TransportConfig {
	t.Helper()

	host, portStr, err := net.SplitHostPort(r.listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &config.TransportConfig{
		Host:           host,
		Port:           port,
		Username:       "mailer",
		Password:       "secret",
		FromEmail:      "noreply@coral.lk",
		FromName:       "Coral Property Developers",
		CompanyEmail:   "info@coral.lk",
		AdminEmail:     "admin@coral.lk",
		Encryption:     config.MailEncryptionNone,
		AuthType:       config.MailAuthPlain,
		ConnectTimeout: 2 * time.Second,
		SendTimeout:    2 * time.Second,
	}
}

func (r *scriptedRelay) serve() {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return
		}
		go r.handle(conn)
	}
}

func (r *scriptedRelay) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	var session smtpSession
	defer func() {
		r.mu.Lock()
		r.sessions = append(r.sessions, session)
		r.mu.Unlock()
	}()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 relay.test ESMTP ready")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(line, " ")
		verb = strings.ToUpper(verb)
		session.commands = append(session.commands, verb)

		switch verb {
		case "EHLO":
			_ = tp.PrintfLine("250-relay.test")
			_ = tp.PrintfLine("250 AUTH PLAIN LOGIN")
		case "HELO":
			_ = tp.PrintfLine("250 relay.test")
		case "AUTH":
			_ = tp.PrintfLine("235 2.7.0 Authentication successful")
		case "MAIL":
			session.from = extractPath(arg)
			_ = tp.PrintfLine("250 2.1.0 Ok")
		case "RCPT":
			session.recipients = append(session.recipients, extractPath(arg))
			_ = tp.PrintfLine("250 2.1.5 Ok")
		case "DATA":
			_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			session.data = data
			_ = tp.PrintfLine("250 2.0.0 Ok: queued")
		case "QUIT":
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return
		default: // NOOP, RSET
			_ = tp.PrintfLine("250 2.0.0 Ok")
		}
	}
}

// sessionWith waits until a session that issued the given command has been recorded.
func (r *scriptedRelay) sessionWith(t *testing.T, verb string) smtpSession {
	t.Helper()

	var found smtpSession
	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, s := range r.sessions {
			for _, c := range s.commands {
				if c == verb {
					found = s
					return true
				}
			}
		}
		return false
	}, 3*time.Second, 10*time.Millisecond)

	return found
}

func extractPath(arg string) string {
	start := strings.Index(arg, "<")
	end := strings.Index(arg, ">")
	if start < 0 || end < start {
		return arg
	}
	return arg[start+1 : end]
}

func TestSmtpTransport_Verify_Success(t *testing.T) {
	relay := newScriptedRelay(t)
	transport := NewSmtpTransport(relay.transportConfig(t))

	outcome := transport.Verify(context.Background())

	assert.True(t, outcome.Success, outcome.Error)
	assert.Empty(t, outcome.Error)

	session := relay.sessionWith(t, "NOOP")
	assert.Contains(t, session.commands, "AUTH")
	assert.NotContains(t, session.commands, "MAIL")
}

func TestSmtpTransport_Send_Success(t *testing.T) {
	relay := newScriptedRelay(t)
	transport := NewSmtpTransport(relay.transportConfig(t))

	outcome := transport.Send(context.Background(), domain.MailMessage{
		FromEmail: "noreply@coral.lk",
		FromName:  "Coral Property Developers",
		To:        "info@coral.lk",
		Bcc:       "admin@coral.lk",
		ReplyTo:   "jane@example.com",
		Subject:   "Hi\r\nBcc: x@evil.com",
		TextBody:  "Hello from the contact form",
		HtmlBody:  "<p>Hello from the contact form</p>",
	})

	require.True(t, outcome.Success, outcome.Error)
	assert.Regexp(t, `^<[0-9a-f-]{36}@coral\.lk>$`, outcome.MessageId)

	session := relay.sessionWith(t, "DATA")
	assert.Equal(t, "noreply@coral.lk", session.from)
	assert.ElementsMatch(t, []string{"info@coral.lk", "admin@coral.lk"}, session.recipients)

	msg, err := netmail.ReadMessage(bytes.NewReader(session.data))
	require.NoError(t, err)

	assert.Equal(t, outcome.MessageId, msg.Header.Get("Message-Id"))
	assert.Contains(t, msg.Header.Get("Reply-To"), "jane@example.com")
	assert.Contains(t, msg.Header.Get("From"), "noreply@coral.lk")
	assert.Contains(t, msg.Header.Get("To"), "info@coral.lk")
	assert.Empty(t, msg.Header.Get("Bcc"))
	assert.NotContains(t, string(session.data), "admin@coral.lk")
	assert.Equal(t, "Hi Bcc: x@evil.com", msg.Header.Get("Subject"))
}

func TestSmtpTransport_Send_WithoutBcc(t *testing.T) {
	relay := newScriptedRelay(t)
	transport := NewSmtpTransport(relay.transportConfig(t))

	outcome := transport.Send(context.Background(), domain.MailMessage{
		FromEmail: "noreply@coral.lk",
		To:        "jane@example.com",
		Subject:   "Thank you for contacting Coral Property Developers",
		TextBody:  "We received your message.",
	})

	require.True(t, outcome.Success, outcome.Error)

	session := relay.sessionWith(t, "DATA")
	assert.Equal(t, []string{"jane@example.com"}, session.recipients)

	msg, err := netmail.ReadMessage(bytes.NewReader(session.data))
	require.NoError(t, err)
	assert.Equal(t, outcome.MessageId, msg.Header.Get("Message-Id"))
}
