// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/folio/pkg/configs"
)

var (
	// configPath 配置文件或配置目录.
	configPath string
	// debug 打印 viper 内部状态.
	debug bool

	rootCmd = &cobra.Command{
		Use:     "folio",
		Short:   "Portfolio backend: galleries, featured ordering, admin panel and contact briefs",
		Version: configs.AppVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")

	registerServeCommands()
	registerConfigsCommands()
	registerGalleryCommands()
	registerKVCommands()
	registerMQCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig 供 serve 以外的子命令读取配置.
func loadConfig() error {
	return configs.InitConfig(configPath)
}
