package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/unais-08/blogs-fullstack/internal/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "blogctl:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "blogctl",
		Usage:     "command line client for the blog API",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "API base URL",
				EnvVars: []string{"BLOG_API_URL"},
				Value:   client.DefaultBaseURL,
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token for authenticated commands",
				EnvVars: []string{"BLOG_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "create an account and print its token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					res, err := apiClient(c).Register(c.Context, client.Registration{
						Name:     c.String("name"),
						Email:    c.String("email"),
						Password: c.String("password"),
					})
					if err != nil {
						return err
					}
					return printJSON(c, res)
				},
			},
			{
				Name:  "login",
				Usage: "log in and print the token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					res, err := apiClient(c).Login(c.Context, client.Credentials{
						Email:    c.String("email"),
						Password: c.String("password"),
					})
					if err != nil {
						return err
					}
					return printJSON(c, res)
				},
			},
			{
				Name:  "profile",
				Usage: "show the authenticated user",
				Action: func(c *cli.Context) error {
					user, err := apiClient(c).Profile(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c, user)
				},
			},
			{
				Name:  "logout",
				Usage: "revoke the token",
				Action: func(c *cli.Context) error {
					return apiClient(c).Logout(c.Context)
				},
			},
			{
				Name:  "list",
				Usage: "list blogs, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "mine", Usage: "only blogs written by the token's user"},
				},
				Action: func(c *cli.Context) error {
					cache := client.NewBlogCache(apiClient(c))
					fetch := cache.FetchAll
					if c.Bool("mine") {
						fetch = cache.FetchMine
					}
					blogs, err := fetch(c.Context, false)
					if err != nil {
						return err
					}
					return printJSON(c, blogs)
				},
			},
			{
				Name:      "get",
				Usage:     "show one blog",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := uuid.Parse(c.Args().First())
					if err != nil {
						return fmt.Errorf("invalid blog id %q", c.Args().First())
					}
					blog, err := apiClient(c).GetBlog(c.Context, id)
					if err != nil {
						return err
					}
					return printJSON(c, blog)
				},
			},
			{
				Name:  "create",
				Usage: "publish a blog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
				},
				Action: func(c *cli.Context) error {
					blog, err := apiClient(c).CreateBlog(c.Context, client.NewBlog{
						Title:   c.String("title"),
						Content: c.String("content"),
					})
					if err != nil {
						return err
					}
					return printJSON(c, blog)
				},
			},
		},
	}
}

func apiClient(c *cli.Context) *client.Client {
	return client.New(c.String("api"), client.WithSession(client.NewSession(c.String("token"))))
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
