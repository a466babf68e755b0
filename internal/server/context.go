package server

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/puchtools/puchcal/internal/calendar"
	"github.com/puchtools/puchcal/internal/config"
	"github.com/puchtools/puchcal/internal/googleauth"
	"github.com/puchtools/puchcal/internal/instrumentation"
	"github.com/puchtools/puchcal/internal/resume"
)

// ServerContext holds the shared dependencies of the MCP server. The
// calendar client and resume text are created lazily on first use; the
// mutex makes that safe under concurrent tool calls.
type ServerContext struct {
	ctx           context.Context
	cancel        context.CancelFunc
	config        *config.Config
	tokenProvider googleauth.TokenProvider
	metrics       *instrumentation.Metrics
	audit         *instrumentation.AuditLogger

	mu             sync.RWMutex
	calendarClient *calendar.Client
	resumeText     string
	resumeLoaded   bool
	shutdown       bool
}

// NewServerContext creates a server context from the loaded
// configuration and credential provider.
func NewServerContext(ctx context.Context, cfg *config.Config, provider googleauth.TokenProvider, metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if audit == nil {
		audit = instrumentation.NewAuditLogger(nil)
	}

	if provider != nil {
		provider = &instrumentedTokenProvider{inner: provider, metrics: metrics}
	}

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		config:        cfg,
		tokenProvider: provider,
		metrics:       metrics,
		audit:         audit,
	}
}

// instrumentedTokenProvider counts token fetch outcomes so credential
// trouble shows up in the token_refresh_total metric.
type instrumentedTokenProvider struct {
	inner   googleauth.TokenProvider
	metrics *instrumentation.Metrics
}

func (p *instrumentedTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := p.inner.Token(ctx)
	if err != nil {
		p.metrics.RecordTokenRefresh(ctx, instrumentation.RefreshResultFailure)
		return nil, err
	}
	p.metrics.RecordTokenRefresh(ctx, instrumentation.RefreshResultSuccess)
	return token, nil
}

// Context returns the server's lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the runtime configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// Metrics returns the metrics recorder.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Audit returns the audit logger.
func (sc *ServerContext) Audit() *instrumentation.AuditLogger {
	return sc.audit
}

// CalendarClient returns the calendar client, creating it on first use.
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.calendarClient != nil {
		return sc.calendarClient, nil
	}
	if sc.tokenProvider == nil {
		return nil, fmt.Errorf("no Google credential configured")
	}

	client, err := calendar.NewClient(sc.ctx, sc.tokenProvider)
	if err != nil {
		return nil, err
	}
	sc.calendarClient = client
	return client, nil
}

// SetCalendarClient replaces the calendar client. Tests use this to
// inject a client bound to a local backend.
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClient = client
}

// ResumeText returns the extracted resume text, reading the PDF on
// first use. The file does not change while the server runs, so the
// text is cached.
func (sc *ServerContext) ResumeText() (string, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.resumeLoaded {
		return sc.resumeText, nil
	}
	if sc.config == nil || !sc.config.HasResume() {
		return "", fmt.Errorf("no resume file configured")
	}

	text, err := resume.ExtractText(sc.config.ResumeFile)
	if err != nil {
		return "", err
	}
	sc.resumeText = text
	sc.resumeLoaded = true
	return text, nil
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
