package commands

import (
	"fmt"
	"net"
	"strconv"

	"github.com/devNatanFrei/e-commerce/internal/app"
	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/spf13/cobra"
)

func newRunserverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runserver [addr]",
		Short: "Start the development HTTP server",
		Long: `Start the development HTTP server on the configured address
(http://127.0.0.1:8000/ by default). The optional positional argument
overrides it and accepts "host:port", ":port" or a bare port number.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := applyAddr(cfg.Server, args[0]); err != nil {
					return err
				}
			}
			return app.Run(cmd.Context(), cfg)
		},
	}
}

// applyAddr overrides the configured bind address. A bare number changes only
// the port, keeping the configured host.
func applyAddr(server *config.Server, addr string) error {
	if port, err := strconv.Atoi(addr); err == nil {
		return setPort(server, port)
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	if host != "" {
		server.Host = host
	}
	return setPort(server, port)
}

func setPort(server *config.Server, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range", port)
	}
	server.Port = port
	return nil
}
