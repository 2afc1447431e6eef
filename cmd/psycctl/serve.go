package main

import (
	"github.com/danmuck/psyc/internal/config"
	"github.com/danmuck/psyc/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var path, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(path, addr)
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Str("addr", cfg.Addr).Msg("loaded server config")
			return server.Appear(cfg).Serve()
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "server config (TOML), defaults when empty")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address override")
	return cmd
}

func loadServeConfig(path, addr string) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	if path != "" {
		loaded, err := config.LoadServerConfig(path)
		if err != nil {
			return config.ServerConfig{}, err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Addr = addr
	}
	return cfg, config.ValidateServerConfig(cfg)
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage config and packet description templates",
	}

	var kind, output string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a template file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(output, kind, force); err != nil {
				return err
			}
			log.Info().Str("kind", kind).Str("path", output).Msg("wrote template")
			return nil
		},
	}
	initCmd.Flags().StringVar(&kind, "kind", "server", "template kind: server|packet")
	initCmd.Flags().StringVarP(&output, "output", "o", "psycd.toml", "output path")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
