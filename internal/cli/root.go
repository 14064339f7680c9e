package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BloggingApp/post-editor/internal/client"
	"github.com/BloggingApp/post-editor/internal/config"
	"github.com/BloggingApp/post-editor/internal/identity"
	"github.com/BloggingApp/post-editor/internal/navigation"
	"github.com/BloggingApp/post-editor/internal/repository/redisrepo"
	"github.com/BloggingApp/post-editor/internal/route"
	"github.com/BloggingApp/post-editor/internal/session"
	"github.com/BloggingApp/post-editor/internal/transport"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	ConfigPath string
	APIURL     string
	Store      string
	Profile    string
	TokenFile  string
	Verbose    bool
	PrettyJSON bool
}

// runtime is the wiring shared by every command for one invocation.
type runtime struct {
	logger   *zap.Logger
	provider *identity.Provider
	bridge   *session.Bridge
	history  *navigation.History
	posts    *client.Client
	cleanup  []func()
}

func (r *runtime) Close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "editor",
		Short:        "Browse, create and edit posts from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Use a token issued by the identity provider
  editor login --token "$ACCESS_TOKEN"

  # Create a post
  editor posts new --title "Hello" --body "..."

  # Open any editor route
  editor open /posts/edit/3 --title "Renamed"
`),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("POST_EDITOR_CONFIG", ""), "Path to app.yaml")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("POST_EDITOR_API", ""), "Posts API base URL (overrides api.url)")
	cmd.PersistentFlags().StringVar(&app.Store, "store", envOr("POST_EDITOR_STORE", ""), "Token store (memory|file|redis)")
	cmd.PersistentFlags().StringVar(&app.Profile, "profile", envOr("POST_EDITOR_PROFILE", ""), "Session profile name")
	cmd.PersistentFlags().StringVar(&app.TokenFile, "token-file", envOr("POST_EDITOR_TOKEN_FILE", ""), "Token file for the file store")
	cmd.PersistentFlags().BoolVar(&app.Verbose, "verbose", false, "Log debug output to stderr")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newPostsCmd(app))
	cmd.AddCommand(newOpenCmd(app))

	return cmd
}

func (a *App) clientConfig() (config.ClientConfig, error) {
	v := viper.New()
	v.SetDefault("api.url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("session.store", "file")
	v.SetDefault("session.profile", "default")
	v.SetEnvPrefix("POST_EDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if a.ConfigPath != "" {
		v.SetConfigFile(a.ConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return config.ClientConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := config.ClientConfig{
		APIURL:       v.GetString("api.url"),
		Timeout:      v.GetDuration("api.timeout"),
		SessionStore: v.GetString("session.store"),
		Profile:      v.GetString("session.profile"),
		TokenFile:    v.GetString("session.token_file"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
	}
	if a.APIURL != "" {
		cfg.APIURL = a.APIURL
	}
	if a.Store != "" {
		cfg.SessionStore = a.Store
	}
	if a.Profile != "" {
		cfg.Profile = a.Profile
	}
	if a.TokenFile != "" {
		cfg.TokenFile = a.TokenFile
	}
	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.TokenFile = filepath.Join(dir, "post-editor", cfg.Profile+".token")
	}

	return cfg, nil
}

func (a *App) newLogger(stderr io.Writer) *zap.Logger {
	level := zapcore.ErrorLevel
	if a.Verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core)
}

func (a *App) open(cmd *cobra.Command, startPath string) (*runtime, error) {
	cfg, err := a.clientConfig()
	if err != nil {
		return nil, err
	}

	rt := &runtime{logger: a.newLogger(cmd.ErrOrStderr())}

	store, err := a.tokenStore(cmd.Context(), cfg, rt)
	if err != nil {
		rt.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	rt.cleanup = append(rt.cleanup, cancel)

	rt.provider = identity.NewProvider(rt.logger, store)
	rt.cleanup = append(rt.cleanup, rt.provider.Close)
	rt.history = navigation.NewHistory(startPath)
	rt.bridge = session.NewBridge(rt.logger, rt.provider, rt.history)
	rt.bridge.Start(ctx)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rt.posts = client.New(rt.logger, cfg.APIURL, transport.NewClient(rt.bridge, timeout))

	return rt, nil
}

func (a *App) tokenStore(ctx context.Context, cfg config.ClientConfig, rt *runtime) (identity.TokenStore, error) {
	switch cfg.SessionStore {
	case "memory":
		return &identity.MemoryStore{}, nil
	case "file", "":
		return identity.FileStore{Path: cfg.TokenFile}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rt.cleanup = append(rt.cleanup, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return identity.NewRedisStore(redisrepo.New(rdb).Default, cfg.Profile), nil
	default:
		return nil, fmt.Errorf("unknown session store %q (want memory|file|redis)", cfg.SessionStore)
	}
}

func writeJSON(cmd *cobra.Command, app *App, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// startPath is where a command's history begins.
var startPath = route.ListPath
