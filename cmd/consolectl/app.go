package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/service"
	"github.com/shreebalaji/traders-console/internal/infrastructure/backend"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db"
	"github.com/shreebalaji/traders-console/internal/pkg/config"
)

const (
	envConfigFile = "CONSOLECTL_CONFIG"
	envProfile    = "CONSOLECTL_PROFILE"
)

// app carries what every command needs: where to read settings from and
// where to write. Connections are opened per command by connect.
type app struct {
	ctx    context.Context
	env    envconfig.Lookuper
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger

	// readPassword prompts for a password when no --password-file is given.
	readPassword func() (string, error)

	configPath string
	profile    string
}

func newApp(ctx context.Context, log zerolog.Logger) *app {
	a := &app{
		ctx:    ctx,
		env:    envconfig.OsLookuper(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		log:    log,
	}
	a.readPassword = a.promptPassword
	return a
}

// commonFlags adds the settings every connected command accepts.
func (a *app) commonFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.configPath, "config", a.lookup(envConfigFile, defaultConfigPath()), "YAML settings file; environment variables take precedence")
	fs.StringVar(&a.profile, "profile", a.lookup(envProfile, "default"), "session profile; each profile holds its own login")
}

func (a *app) lookup(key, fallback string) string {
	if v, ok := a.env.Lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "traders-console", "consolectl.yaml")
}

// conn is one command's view of the session and the backend.
type conn struct {
	cfg    *config.Config
	store  *service.SessionStore
	client *backend.Client
	close  db.CloseFunc
}

// connect loads settings, opens the session backend, hydrates the profile's
// session and binds it to a backend client.
func (a *app) connect() (*conn, error) {
	cfg, err := config.LoadCLI(a.ctx, a.configPath, a.env)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	repo, closeFn, err := db.OpenSessions(a.ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("session store (%s): %w", cfg.SessionBackend, err)
	}
	store := service.NewSessionStore(repo, "cli:"+a.profile, a.log)
	if err := store.Hydrate(a.ctx); err != nil {
		_ = closeFn(a.ctx)
		return nil, err
	}
	client, err := backend.Connect(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, a.log)
	if err != nil {
		_ = closeFn(a.ctx)
		return nil, err
	}
	client = client.WithObserver(a.traceBackend).WithCredentials(store)
	return &conn{cfg: cfg, store: store, client: client, close: closeFn}, nil
}

func (a *app) traceBackend(method, path string, status int, elapsed time.Duration) {
	a.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("backend call")
}

// withConn runs fn with a connection and closes it afterwards.
func (a *app) withConn(fn func(c *conn) error) error {
	c, err := a.connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := c.close(a.ctx); err != nil {
			a.log.Warn().Err(err).Msg("closing session store")
		}
	}()
	return fn(c)
}

// require refuses to run a command unless the profile is logged in with
// role. It asks the same authorizer the web console uses.
func (a *app) require(c *conn, role domain.Role) error {
	switch service.Authorize(c.store, role) {
	case service.Permit:
		return nil
	case service.Wait:
		return fmt.Errorf("session is still loading")
	default:
		return fmt.Errorf("this command requires logging in as %s; run 'consolectl login <email>'", role)
	}
}

func (a *app) promptPassword() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.errOut, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// password reads --password-file when set, otherwise prompts.
func (a *app) password(file string) (string, error) {
	if file == "" || file == "-" {
		return a.readPassword()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
