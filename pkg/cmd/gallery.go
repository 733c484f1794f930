package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/storage"
)

var (
	galleryCmd = &cobra.Command{
		Use:   "gallery",
		Short: "Gallery related commands",
	}

	galleryListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list the public galleries",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range gallery.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "   - %-10s %s\n", d.Name, d.Label)
			}
		},
	}

	galleryShowCmd = &cobra.Command{
		Use:       "show <name>",
		Short:     "print the public projection of a gallery",
		Args:      cobra.ExactArgs(1),
		ValidArgs: galleryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(func(ctx context.Context, mgr *storage.Manager) error {
				resp, err := service.NewGalleryService(ctxPkg.WithStorageManager(ctx, mgr)).Project(ctx, args[0])
				if err != nil {
					return err
				}

				b, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(b))

				return nil
			})
		},
	}
)

func galleryNames() []string {
	var out []string
	for _, n := range gallery.Names() {
		out = append(out, string(n))
	}

	return out
}

// registerGalleryCommands 注册图集相关命令.
func registerGalleryCommands() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryShowCmd)
}
