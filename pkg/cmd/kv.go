package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/storage"
	kv "github.com/yeisme/folio/pkg/internal/storage/kv"
)

var (
	kvCmd = &cobra.Command{
		Use:     "kv",
		Short:   "Inspect the gallery cache backend",
		Aliases: []string{"cache"},
	}

	kvListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list the registered kv backends",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range kv.Backends() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t))
			}
		},
	}

	kvKeysCmd = &cobra.Command{
		Use:   "keys [pattern]",
		Short: "list cached keys matching a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}

			return withManager(func(ctx context.Context, mgr *storage.Manager) error {
				keys, err := mgr.GetKVClient().Keys(ctx, pattern)
				if err != nil {
					return err
				}

				if len(keys) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "(no keys)")
					return nil
				}

				sort.Strings(keys)
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keys, "\n"))

				return nil
			})
		},
	}

	kvPurgeCmd = &cobra.Command{
		Use:       "purge [gallery...]",
		Short:     "drop cached gallery projections, all of them when no name is given",
		ValidArgs: galleryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if _, err := gallery.Lookup(name); err != nil {
					return err
				}
			}

			return withManager(func(ctx context.Context, mgr *storage.Manager) error {
				svc := service.NewGalleryService(ctxPkg.WithStorageManager(ctx, mgr))
				if err := svc.Invalidate(ctx, args...); err != nil {
					return err
				}

				target := "all galleries"
				if len(args) > 0 {
					target = strings.Join(args, ", ")
				}

				fmt.Fprintln(cmd.OutOrStdout(), "purged:", target)

				return nil
			})
		},
	}
)

// withManager 加载配置并打开存储，fn 返回后关闭.
func withManager(fn func(ctx context.Context, mgr *storage.Manager) error) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := context.Background()

	mgr, err := storage.Init(ctx)
	if err != nil {
		return err
	}
	defer mgr.Close()

	return fn(ctx, mgr)
}

func registerKVCommands() {
	rootCmd.AddCommand(kvCmd)
	kvCmd.AddCommand(kvListCmd, kvKeysCmd, kvPurgeCmd)
}
