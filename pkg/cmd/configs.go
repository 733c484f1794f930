package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/folio/pkg/configs"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	pathCmd = &cobra.Command{
		Use:   "path",
		Short: "print the config file in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			file := configs.GetViper().ConfigFileUsed()
			if file == "" {
				file = "(none, defaults and environment only)"
			}

			fmt.Fprintln(cmd.OutOrStdout(), file)

			return nil
		},
	}

	// validateCmd 加载并校验配置，同时报告降级运行的组件.
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "load and validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			c := configs.GetConfig()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "config ok")

			if !c.Media.Configured() {
				fmt.Fprintln(out, "warning: media credentials missing, galleries serve the static fallback")
			}

			if !c.Admin.Enabled() {
				fmt.Fprintln(out, "warning: admin password unset, admin login is disabled")
			}

			if !c.Contact.EmailEnabled() && !c.Contact.WebhookEnabled() {
				fmt.Fprintln(out, "warning: no contact transport, briefs cannot be delivered")
			}

			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "print the effective config with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			if debug {
				configs.GetViper().Debug()
			}

			b, err := json.MarshalIndent(redacted(*configs.GetConfig()), "", "  ")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

func registerConfigsCommands() {
	debugCmd.Flags().BoolVar(&debug, "viper", false, "also dump viper internals")

	configCmd.AddCommand(pathCmd, validateCmd, debugCmd)
	rootCmd.AddCommand(configCmd)
}

const mask = "******"

// redacted 隐去密钥类字段.
func redacted(c configs.AppConfig) configs.AppConfig {
	for _, s := range []*string{
		&c.Media.APISecret,
		&c.Admin.Password,
		&c.Admin.SessionSecret,
		&c.Contact.SMTP.Password,
		&c.KV.Redis.Password,
		&c.MQ.Password,
	} {
		if *s != "" {
			*s = mask
		}
	}

	return c
}
