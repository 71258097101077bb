package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/quill-input/quill/internal/configpaths"
	"github.com/quill-input/quill/internal/server/api"
	"github.com/quill-input/quill/internal/server/api/auth"
	"github.com/quill-input/quill/internal/server/api/handler"
)

const keyFileName = "quill.key.txt"

// Serve runs the input injection API server on top of a local backend.
type Serve struct {
	backendOpts       `embed:""`
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	ConnectionTimeout time.Duration    `help:"Connection operation timeout" default:"30s" env:"QUILL_CONNECTION_TIMEOUT"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger)
}

func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout

	if s.ApiServerConfig.Password == "" {
		keyFileDir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve key file path: %w", err)
		}
		keyFilePath := path.Join(keyFileDir, keyFileName)
		if pwd, err := os.ReadFile(keyFilePath); err == nil {
			s.ApiServerConfig.Password = strings.TrimSpace(string(pwd))
		} else {
			newPwd, err := auth.GenerateKey()
			if err != nil {
				return fmt.Errorf("failed to generate new API password: %w", err)
			}
			if err := os.MkdirAll(keyFileDir, 0o700); err != nil {
				return fmt.Errorf("failed to create config dir for key file: %w", err)
			}
			if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
				return fmt.Errorf("failed to write new API password to file: %w", err)
			}
			s.ApiServerConfig.Password = newPwd
			logger.Info("Generated API server password", "path", keyFilePath)
			logger.Info("-------------------------------------")
			logger.Info("Your quill API server password is:")
			logger.Info("-------------------------------------")
			logger.Info(newPwd)
			logger.Info("-------------------------------------")
			logger.Info("You can change this password at any time by editing the file")
		}
	}

	inj, err := s.connect(logger)
	if err != nil {
		return fmt.Errorf("connect display backend: %w", err)
	}

	if s.ApiServerConfig.Addr == "" {
		_ = inj.Teardown()
		return fmt.Errorf("API server address must be set (default :3243)")
	}

	logger.Info("Starting quill input server", "backend", inj.Status().Backend, "addr", s.ApiServerConfig.Addr)

	apiSrv := api.New(s.ApiServerConfig.Addr, s.ApiServerConfig, logger)
	r := apiSrv.Router()
	r.Register("ping", handler.Ping())
	r.Register("type", handler.Type(inj))
	r.Register("key/{action}", handler.Key(inj))
	r.Register("mouse/move", handler.MouseMove(inj))
	r.Register("mouse/button", handler.MouseButton(inj))
	r.Register("mouse/scroll", handler.MouseScroll(inj))
	r.Register("status", handler.Status(inj))

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		_ = inj.Teardown()
		return err
	}

	<-ctx.Done()
	apiSrv.Close()
	if err := inj.Teardown(); err != nil {
		logger.Warn("backend teardown", "error", err)
	}
	return nil
}
