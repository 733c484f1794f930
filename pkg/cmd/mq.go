package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/storage"
	mq "github.com/yeisme/folio/pkg/internal/storage/mq"
	"github.com/yeisme/folio/pkg/queue"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "Event bus commands",
		Aliases: []string{"events"},
	}

	mqListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list the registered event bus transports",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range mq.RegisteredTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+t)
			}
		},
	}

	mqTopicsCmd = &cobra.Command{
		Use:   "topics",
		Short: "list the event topics published by the service",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range queue.AllTopics {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+t)
			}
		},
	}

	// mqNotifyCmd 广播 gallery.changed，使用 nats 时所有实例都会失效对应缓存.
	mqNotifyCmd = &cobra.Command{
		Use:       "notify [gallery...]",
		Short:     "broadcast gallery.changed so running instances drop their cached projections",
		ValidArgs: galleryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if _, err := gallery.Lookup(name); err != nil {
					return err
				}
			}

			return withManager(func(ctx context.Context, mgr *storage.Manager) error {
				payload := queue.GalleryChangedPayload{Galleries: args, Reason: queue.ReasonManual}
				if err := queue.PublishGalleryChanged(ctx, mgr.GetMQClient(), payload, queue.WithProducer("folio-cli")); err != nil {
					return err
				}

				target := "all galleries"
				if len(args) > 0 {
					target = strings.Join(args, ", ")
				}

				fmt.Fprintf(cmd.OutOrStdout(), "published %s for %s via %s\n",
					queue.TopicGalleryChanged, target, mgr.GetMQClient().Type)

				return nil
			})
		},
	}
)

func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd, mqTopicsCmd, mqNotifyCmd)
}
