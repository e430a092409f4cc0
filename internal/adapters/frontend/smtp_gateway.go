package frontend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/utils"
)

// GatewayOptions configures the SMTP gateway
type GatewayOptions struct {
	ListenAddress   string
	Domain          string
	BlockUnsafe     bool
	MaxLinks        int
	AnalysisTimeout time.Duration
	SafeHeader      string
	ScoreHeader     string
	ReasonsHeader   string
	ModifySubject   bool
	SubjectPrefix   string
	RelayEnabled    bool
	RelayAddress    string
	RelayPort       int
}

// SMTPGateway is a content filter that scores the sender and links of
// each message, stamps the verdict into headers and relays the message on
type SMTPGateway struct {
	analyzer      Analyzer
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	opts          GatewayOptions
	server        *smtp.Server
}

// messageSummary folds the per-input results into one message verdict
type messageSummary struct {
	Safe    bool
	Score   int
	Reasons []string
}

// NewSMTPGateway creates a new SMTP gateway
func NewSMTPGateway(analyzer Analyzer, logger *zap.Logger, textProcessor *utils.TextProcessor, opts GatewayOptions) *SMTPGateway {
	if opts.SubjectPrefix == "" && opts.ModifySubject {
		opts.SubjectPrefix = "[PHISHING?] "
	}
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = 20 * time.Second
	}

	return &SMTPGateway{
		analyzer:      analyzer,
		logger:        logger,
		textProcessor: textProcessor,
		opts:          opts,
	}
}

// Start starts the SMTP listener
func (g *SMTPGateway) Start() error {
	g.server = g.newServer()
	g.logger.Info("SMTP gateway starting", zap.String("address", g.opts.ListenAddress))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			g.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP listener
func (g *SMTPGateway) Stop() error {
	if g.server != nil {
		return g.server.Close()
	}
	return nil
}

func (g *SMTPGateway) newServer() *smtp.Server {
	server := smtp.NewServer(&smtpBackend{gateway: g})
	server.Addr = g.opts.ListenAddress
	server.Domain = g.opts.Domain
	server.ReadTimeout = 30 * time.Second
	server.WriteTimeout = 30 * time.Second
	server.MaxMessageBytes = 30 * 1024 * 1024
	server.MaxRecipients = 50
	server.AllowInsecureAuth = true
	return server
}

// Process analyzes one message and returns it with verdict headers added.
// An unsafe message is refused with an SMTP 550 when blocking is enabled.
func (g *SMTPGateway) Process(ctx context.Context, sender string, raw []byte) ([]byte, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email message: %w", err)
	}

	text, err := extractTextFromMessage(msg)
	if err != nil {
		g.logger.Warn("Failed to extract text content", zap.Error(err))
	}

	inputs := g.inputsFor(sender, msg.Header, text)

	ctx, cancel := context.WithTimeout(ctx, g.opts.AnalysisTimeout)
	defer cancel()
	summary := summarize(g.analyzer.AnalyzeBatch(ctx, inputs))

	g.logger.Info("Analyzed message",
		zap.String("sender", sender),
		zap.Int("inputs", len(inputs)),
		zap.Bool("is_safe", summary.Safe),
		zap.Int("score", summary.Score))

	if !summary.Safe && g.opts.BlockUnsafe {
		return nil, &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Rejected as likely phishing (score: %d)", summary.Score),
		}
	}

	return g.rewrite(raw, summary), nil
}

// inputsFor lists the sender address followed by the distinct links
func (g *SMTPGateway) inputsFor(sender string, header mail.Header, text string) []string {
	var inputs []string

	if sender == "" {
		if from, err := mail.ParseAddress(header.Get("From")); err == nil {
			sender = from.Address
		}
	}
	if sender != "" {
		inputs = append(inputs, sender)
	}

	return append(inputs, extractLinks(text, g.opts.MaxLinks)...)
}

func summarize(results []core.DetectionResult) messageSummary {
	summary := messageSummary{Safe: true}

	for _, r := range results {
		if r.Score > summary.Score {
			summary.Score = r.Score
		}
		if !r.IsSafe {
			summary.Safe = false
			summary.Reasons = append(summary.Reasons, r.Input+": "+strings.Join(r.Reasons, ", "))
		}
	}

	if len(results) == 0 {
		summary.Reasons = []string{"No sender or links to analyze"}
	} else if summary.Safe {
		summary.Reasons = []string{"No phishing indicators found"}
	}

	return summary
}

// headerLines renders the verdict headers, folded onto single lines
func (g *SMTPGateway) headerLines(summary messageSummary) []string {
	reasons := g.textProcessor.HeaderValue(strings.Join(summary.Reasons, "; "))

	return []string{
		g.opts.SafeHeader + ": " + strconv.FormatBool(summary.Safe),
		g.opts.ScoreHeader + ": " + strconv.Itoa(summary.Score),
		g.opts.ReasonsHeader + ": " + reasons,
	}
}

// rewrite prepends the verdict headers, drops any copies of them supplied
// by the sender and prefixes the subject of unsafe messages when enabled
func (g *SMTPGateway) rewrite(raw []byte, summary messageSummary) []byte {
	headerBlock, body := splitMessage(raw)

	drop := map[string]bool{
		strings.ToLower(g.opts.SafeHeader):    true,
		strings.ToLower(g.opts.ScoreHeader):   true,
		strings.ToLower(g.opts.ReasonsHeader): true,
	}
	prefixSubject := !summary.Safe && g.opts.ModifySubject && g.opts.SubjectPrefix != ""

	var out bytes.Buffer
	for _, line := range g.headerLines(summary) {
		out.WriteString(line)
		out.WriteString("\r\n")
	}

	for _, field := range splitHeaderFields(headerBlock) {
		name := strings.ToLower(strings.TrimSpace(field[:strings.Index(field, ":")]))
		if drop[name] {
			continue
		}
		if name == "subject" && prefixSubject {
			field = prefixSubjectField(field, g.opts.SubjectPrefix)
		}
		out.WriteString(field)
	}

	out.WriteString("\r\n")
	out.Write(body)
	return out.Bytes()
}

// splitMessage separates the raw header block from the body
func splitMessage(raw []byte) (string, []byte) {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return string(raw[:i+2]), raw[i+4:]
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return string(raw[:i+1]), raw[i+2:]
	}
	return string(raw), nil
}

// splitHeaderFields returns each header field with its continuation lines
// and line endings intact. Lines without a colon are dropped.
func splitHeaderFields(block string) []string {
	var fields []string
	for _, line := range strings.SplitAfter(block, "\n") {
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(fields) > 0 {
			fields[len(fields)-1] += line
			continue
		}
		if !strings.Contains(line, ":") {
			continue
		}
		fields = append(fields, line)
	}
	return fields
}

func prefixSubjectField(field, prefix string) string {
	colon := strings.Index(field, ":")
	value := strings.TrimLeft(field[colon+1:], " \t")
	if strings.HasPrefix(decodeHeader(value), prefix) {
		return field
	}
	return field[:colon+1] + " " + prefix + value
}

// relay hands the processed message to the downstream MTA
func (g *SMTPGateway) relay(sender string, recipients []string, data []byte) error {
	addr := net.JoinHostPort(g.opts.RelayAddress, strconv.Itoa(g.opts.RelayPort))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			g.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return errors.New("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// The message is already accepted at this point
		g.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	gateway *SMTPGateway
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{gateway: b.gateway}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	gateway    *SMTPGateway
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	g := s.gateway

	raw, err := io.ReadAll(r)
	if err != nil {
		g.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	processed, err := g.Process(context.Background(), s.sender, raw)
	if err != nil {
		var smtpErr *smtp.SMTPError
		if errors.As(err, &smtpErr) {
			g.logger.Info("Rejecting message", zap.String("sender", s.sender), zap.String("reason", smtpErr.Message))
		} else {
			g.logger.Error("Failed to process message", zap.String("sender", s.sender), zap.Error(err))
		}
		return err
	}

	if !g.opts.RelayEnabled {
		g.logger.Warn("Relay disabled, message accepted but not forwarded", zap.String("sender", s.sender))
		return nil
	}

	if err := g.relay(s.sender, s.recipients, processed); err != nil {
		g.logger.Error("Failed to relay message", zap.String("sender", s.sender), zap.Error(err))
		return err
	}
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
