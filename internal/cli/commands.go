package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/posts"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/server"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

var errNoCurrentUser = errors.New("no current user, run `classifieds user use <login> <password>` first")

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return opts.withApp(ctx, func(app *server.App) error {
				return app.Run(ctx)
			})
		},
	}
}

func newRoutesCommand(opts *options) *cobra.Command {
	var tierName string
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Show navigation and restricted routes for a tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tier.Parse(tierName)
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(app *server.App) error {
				var viewer *access.Viewer
				if !anonymous {
					viewer = &access.Viewer{ID: "cli", Tier: t}
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAVIGATION\tPATH")
				for _, r := range app.Resolver.NavigationFor(viewer) {
					fmt.Fprintf(w, "%s\t%s\n", r.Label, r.Path)
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "RESTRICTED FOR %s\tREQUIRES\n", strings.ToUpper(t.String()))
				for _, r := range app.Resolver.RestrictedRoutesFor(t) {
					names := make([]string, 0, len(r.RequiredTiers))
					for _, rt := range r.RequiredTiers {
						names = append(names, rt.String())
					}
					fmt.Fprintf(w, "%s\t%s\n", r.Label, strings.Join(names, ","))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&tierName, "tier", "t", "free", "tier to evaluate (free, premium, vip)")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "evaluate navigation for a signed-out visitor")
	return cmd
}

func newPostsCommand(opts *options) *cobra.Command {
	var all, mine bool

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts with their remaining lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(app *server.App) error {
				ctx := cmd.Context()
				var (
					list []posts.View
					err  error
				)
				switch {
				case mine:
					u, uerr := app.Records.CurrentUser(ctx)
					if uerr != nil {
						return uerr
					}
					if u == nil {
						return errNoCurrentUser
					}
					list, err = app.Posts.ByOwner(ctx, u.ID, all)
				case all:
					list, err = app.Posts.All(ctx)
				default:
					list, err = app.Posts.Active(ctx)
				}
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tTIER\tREMAINING")
				for _, p := range list {
					remaining := p.Remaining
					if p.Expired {
						remaining = "expired"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.Tier, remaining)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include expired posts")
	cmd.Flags().BoolVar(&mine, "mine", false, "only posts of the current user")
	return cmd
}

func newStoreCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Store maintenance commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Erase every record kept by the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(app *server.App) error {
				if err := app.Records.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "store %q cleared\n", opts.cfg.Store.Driver)
				return nil
			})
		},
	})
	return cmd
}

func newUserCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the current local user",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "use <login> <password>",
			Short: "Sign in and remember the user as current",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd.Context(), func(app *server.App) error {
					u, _, err := app.Auth.LoginUser(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					if err := app.Records.SetCurrentUser(cmd.Context(), u); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "current user: %s (%s)\n", u.Username, u.Tier)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the current user",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd.Context(), func(app *server.App) error {
					u, err := app.Records.CurrentUser(cmd.Context())
					if err != nil {
						return err
					}
					if u == nil {
						return errNoCurrentUser
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s%s\n", u.ID, u.Username, u.Tier, tier.BadgeOf(u.Tier))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "register <email> <username> <password>",
			Short: "Create a free account",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd.Context(), func(app *server.App) error {
					u, err := app.Auth.RegisterUser(cmd.Context(), args[0], args[1], args[2])
					if err != nil {
						return fmt.Errorf("register: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", u.Username, u.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "upgrade <tier>",
			Short: "Upgrade the current user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				target, err := tier.Parse(args[0])
				if err != nil {
					return err
				}
				return opts.withApp(cmd.Context(), func(app *server.App) error {
					u, err := app.Records.CurrentUser(cmd.Context())
					if err != nil {
						return err
					}
					if u == nil {
						return errNoCurrentUser
					}
					updated, _, err := app.Subscriptions.Upgrade(cmd.Context(), u.ID, target)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Username, updated.Tier)
					return nil
				})
			},
		},
	)
	return cmd
}
