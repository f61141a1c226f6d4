// Package cli builds the kaleron command tree. Every command opens one
// account link handle, runs one operation on it and prints the result.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/vjeantet/jodaTime"

	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/version"
	"github.com/MrSnakeDoc/accountlink/pkg/accountlink"
)

// NewApp returns the kaleron CLI writing results to out and logs to stderr.
func NewApp(out io.Writer) *cli.App {
	if out == nil {
		out = os.Stdout
	}

	return &cli.App{
		Name:                 "kaleron",
		Usage:                "Drive a Kaleron account link from the command line",
		Version:              version.Version,
		Writer:               out,
		ErrWriter:            os.Stderr,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "token",
				Aliases:  []string{"t"},
				Usage:    "account link token (UUID)",
				EnvVars:  []string{"KALERON_LINK_TOKEN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "API root every endpoint is resolved against (default " + accountlink.DefaultBaseURL + ")",
				EnvVars: []string{"KALERON_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "endpoints-file",
				Usage:   "YAML file overriding the endpoint set",
				EnvVars: []string{"KALERON_ENDPOINTS_FILE"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   accountlink.DefaultTimeout,
				Usage:   "timeout of each remote call",
				EnvVars: []string{"KALERON_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "warn",
				Usage:   "log level: debug, info, warn, error",
				EnvVars: []string{"KALERON_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			cmdInfo,
			cmdEmail,
			cmdComments,
			cmdComment,
			cmdLike,
			cmdDislike,
			cmdUnlink,
		},
	}
}

// open builds the handle described by the global flags.
func open(c *cli.Context) (*accountlink.Link, error) {
	token, err := uuid.Parse(c.String("token"))
	if err != nil {
		return nil, fmt.Errorf("invalid link token: %w", err)
	}

	endpoints := accountlink.DefaultEndpoints()
	if path := c.String("endpoints-file"); path != "" {
		if endpoints, err = accountlink.LoadEndpoints(path); err != nil {
			return nil, err
		}
	}
	if base := c.String("base-url"); base != "" {
		endpoints.BaseURL = base
	}

	log := logger.New(c.String("log-level"), true).Named("accountlink")

	return accountlink.New(c.Context, token,
		accountlink.WithEndpoints(endpoints),
		accountlink.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}),
		accountlink.WithLogger(log.Zap()),
		accountlink.WithUserAgent(version.UserAgent()),
	)
}

// withLink opens the handle and hands it to fn.
func withLink(fn func(c *cli.Context, l *accountlink.Link) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		l, err := open(c)
		if err != nil {
			return err
		}
		return fn(c, l)
	}
}

// requireArgs rejects a call of command that does not pass exactly names.
func requireArgs(command string, names ...string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.NArg() != len(names) {
			return fmt.Errorf("usage: %s %s %s", c.App.Name, command, strings.ToUpper(strings.Join(names, " ")))
		}
		return nil
	}
}

var cmdInfo = &cli.Command{
	Name:  "info",
	Usage: "Show the account link profile and permissions",
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		w := c.App.Writer
		fmt.Fprintf(w, "username:    %s\n", l.Username())
		fmt.Fprintf(w, "domain:      %s\n", l.Domain())
		fmt.Fprintf(w, "created:     %s\n", jodaTime.Format(accountlink.LinkDateFormat, l.CreatedAt()))
		fmt.Fprintf(w, "permissions: %s\n", strings.Join(l.Permissions(), ", "))
		return nil
	}),
}

var cmdEmail = &cli.Command{
	Name:  "email",
	Usage: "Print the email address of the linked account",
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		email, err := l.GetEmail(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, email)
		return nil
	}),
}

var cmdComments = &cli.Command{
	Name:      "comments",
	Usage:     "List the comments of a video",
	ArgsUsage: "VIDEO",
	Before:    requireArgs("comments", "video"),
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		comments, err := l.ReadComments(c.Context, c.Args().Get(0))
		if err != nil {
			return err
		}
		for _, comment := range comments {
			fmt.Fprintln(c.App.Writer, comment)
		}
		return nil
	}),
}

var cmdComment = &cli.Command{
	Name:      "comment",
	Usage:     "Post a comment on a video",
	ArgsUsage: "VIDEO CONTENT",
	Before:    requireArgs("comment", "video", "content"),
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		video := c.Args().Get(0)
		if err := l.SendComment(c.Context, video, c.Args().Get(1)); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "comment posted on %s\n", video)
		return nil
	}),
}

var cmdLike = &cli.Command{
	Name:      "like",
	Usage:     "Toggle the like on a video",
	ArgsUsage: "VIDEO",
	Before:    requireArgs("like", "video"),
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		video := c.Args().Get(0)
		if err := l.ToggleVideoLike(c.Context, video); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "like toggled on %s\n", video)
		return nil
	}),
}

var cmdDislike = &cli.Command{
	Name:      "dislike",
	Usage:     "Toggle the dislike on a video",
	ArgsUsage: "VIDEO",
	Before:    requireArgs("dislike", "video"),
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		video := c.Args().Get(0)
		if err := l.ToggleVideoDislike(c.Context, video); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "dislike toggled on %s\n", video)
		return nil
	}),
}

var cmdUnlink = &cli.Command{
	Name:  "unlink",
	Usage: "Remove the account link on the remote service",
	Action: withLink(func(c *cli.Context, l *accountlink.Link) error {
		if err := l.Remove(c.Context); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "account link removed")
		return nil
	}),
}
