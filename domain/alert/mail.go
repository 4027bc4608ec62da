package alert

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"syscall"
	"time"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/domain/motion"
)

// Mode selects how the SMTP connection is secured.
type Mode int

const (
	ModePlain       Mode = iota // plaintext, no upgrade
	ModeStartTLS                // plaintext upgraded via STARTTLS
	ModeImplicitTLS             // TLS from the first byte
)

func (m Mode) String() string {
	switch m {
	case ModeStartTLS:
		return "starttls"
	case ModeImplicitTLS:
		return "tls"
	default:
		return "plain"
	}
}

// ModeForPort maps the configured port to a connection mode: 465 is implicit
// TLS, 587 is STARTTLS, anything else is plaintext.
func ModeForPort(port string) Mode {
	switch strings.TrimSpace(port) {
	case "465":
		return ModeImplicitTLS
	case "587":
		return ModeStartTLS
	default:
		return ModePlain
	}
}

// Client is the subset of *smtp.Client used to deliver a message.
type Client interface {
	Hello(localName string) error
	StartTLS(cfg *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer opens SMTP sessions.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Client, error)
	DialTLS(ctx context.Context, addr string, cfg *tls.Config) (Client, error)
}

// NetDialer dials real SMTP servers.
type NetDialer struct {
	Timeout time.Duration
}

func (d NetDialer) Dial(ctx context.Context, addr string) (Client, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return newClient(conn, addr)
}

func (d NetDialer) DialTLS(ctx context.Context, addr string, cfg *tls.Config) (Client, error) {
	td := tls.Dialer{NetDialer: &net.Dialer{Timeout: d.Timeout}, Config: cfg}
	conn, err := td.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return newClient(conn, addr)
}

func newClient(conn net.Conn, addr string) (Client, error) {
	host, _, _ := net.SplitHostPort(addr)
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

const (
	phaseDial = "dial"
	phaseAuth = "auth"
	phaseSend = "send"
)

// Mailer delivers motion notifications over SMTP.
type Mailer struct {
	dialer    Dialer
	localName string
	now       func() time.Time
}

// NewMailer returns a mailer using dialer, or a NetDialer when nil.
func NewMailer(dialer Dialer) *Mailer {
	if dialer == nil {
		dialer = NetDialer{}
	}
	return &Mailer{dialer: dialer, localName: "localhost", now: time.Now}
}

// Send delivers one notification for ev. The returned error wraps one of
// ErrSMTPAuth, ErrSMTPConnect, ErrSMTPDisconnected or ErrSMTPOther.
func (m *Mailer) Send(ctx context.Context, cfg config.SMTP, ev motion.Event) error {
	host := strings.TrimSpace(cfg.Server)
	if host == "" {
		return fmt.Errorf("%w: no server configured", ErrSMTPConnect)
	}
	addr := net.JoinHostPort(host, strings.TrimSpace(cfg.Port))
	tlsCfg := &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}

	mode := ModeForPort(cfg.Port)
	var (
		c   Client
		err error
	)
	if mode == ModeImplicitTLS {
		c, err = m.dialer.DialTLS(ctx, addr, tlsCfg)
	} else {
		c, err = m.dialer.Dial(ctx, addr)
	}
	if err != nil {
		return classify(phaseDial, err)
	}
	defer c.Close()

	if mode != ModeImplicitTLS {
		if err := c.Hello(m.localName); err != nil {
			return classify(phaseDial, err)
		}
	}
	if mode == ModeStartTLS {
		if err := c.StartTLS(tlsCfg); err != nil {
			return classify(phaseDial, err)
		}
	}

	if err := c.Auth(authFor(mode, cfg, host)); err != nil {
		return classify(phaseAuth, err)
	}
	if err := c.Mail(cfg.Email); err != nil {
		return classify(phaseSend, err)
	}
	if err := c.Rcpt(cfg.Recipient); err != nil {
		return classify(phaseSend, err)
	}
	w, err := c.Data()
	if err != nil {
		return classify(phaseSend, err)
	}
	if _, err := w.Write(BuildMessage(cfg, ev, m.now())); err != nil {
		w.Close()
		return classify(phaseSend, err)
	}
	if err := w.Close(); err != nil {
		return classify(phaseSend, err)
	}
	if err := c.Quit(); err != nil {
		return classify(phaseSend, err)
	}
	return nil
}

// authFor picks the PLAIN mechanism for mode. smtp.PlainAuth refuses
// unencrypted connections to remote hosts, so plaintext ports send the
// credentials directly.
func authFor(mode Mode, cfg config.SMTP, host string) smtp.Auth {
	if mode == ModePlain {
		return unencryptedPlainAuth{username: cfg.Email, password: cfg.Password}
	}
	return smtp.PlainAuth("", cfg.Email, cfg.Password, host)
}

// unencryptedPlainAuth implements RFC 4616 PLAIN without a TLS requirement.
type unencryptedPlainAuth struct {
	username, password string
}

func (a unencryptedPlainAuth) Start(*smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a unencryptedPlainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}

// BuildMessage renders a plain-text RFC 5322 message.
func BuildMessage(cfg config.SMTP, ev motion.Event, now time.Time) []byte {
	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", cfg.Email)
	header("To", cfg.Recipient)
	header("Subject", mime.QEncoding.Encode("utf-8", cfg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@motion-guard>", ev.ID.String()))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	b.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&b)
	body := strings.ReplaceAll(cfg.Body, "\r\n", "\n")
	_, _ = qp.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n")))
	_ = qp.Close()
	b.WriteString("\r\n")
	return b.Bytes()
}

func classify(phase string, err error) error {
	var sentinel error
	switch {
	case isDisconnect(err):
		sentinel = ErrSMTPDisconnected
	case isAuthReply(err) || phase == phaseAuth:
		sentinel = ErrSMTPAuth
	case phase == phaseDial:
		sentinel = ErrSMTPConnect
	default:
		sentinel = ErrSMTPOther
	}
	return fmt.Errorf("%w: %s: %v", sentinel, phase, err)
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

func isAuthReply(err error) bool {
	var te *textproto.Error
	if !errors.As(err, &te) {
		return false
	}
	switch te.Code {
	case 530, 534, 535:
		return true
	}
	return false
}
