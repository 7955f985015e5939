package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	confPath string
	verbose  bool

	drafts bool
	port   int
	watch  bool
)

var rootCmd = &cobra.Command{
	Use:           "blog",
	Short:         "Static site generator for a personal blog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := readConf(confPath)
		if err != nil {
			return err
		}
		return renderSite(conf, drafts, withProgress(os.Stderr))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render the site and serve it on localhost",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := readConf(confPath)
		if err != nil {
			return err
		}

		var opts []siteOption
		var hub *reloadHub
		if watch {
			hub = newReloadHub()
			opts = append(opts, withLiveReload())
		}
		if err := renderSite(conf, drafts, opts...); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watch {
			go func() {
				err := rerenderOnChange(ctx, conf, func() error {
					if err := renderSite(conf, drafts, opts...); err != nil {
						return err
					}
					hub.broadcast()
					return nil
				})
				if err != nil {
					log.Println(err)
				}
			}()
		}
		return serveSite(ctx, conf.OutDir, fmt.Sprintf(":%d", port), hub)
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new draft post",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := readConf(confPath)
		if err != nil {
			return err
		}
		title, description, err := promptNewPost()
		if err != nil {
			return err
		}
		p, err := scaffoldPost(conf.ContentDir, title, description, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("Created", p)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "config", "blog.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	buildCmd.Flags().BoolVar(&drafts, "drafts", false, "include posts marked as draft")

	serveCmd.Flags().BoolVar(&drafts, "drafts", false, "include posts marked as draft")
	serveCmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "re-render and reload the browser on changes")

	rootCmd.AddCommand(buildCmd, serveCmd, newCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderSite(conf *SiteConf, drafts bool, opts ...siteOption) error {
	site, err := ReadSite(conf, drafts, opts...)
	if err != nil {
		return err
	}

	log.Println("Writing site to " + conf.OutDir)
	if err := site.RenderAll(); err != nil {
		return err
	}
	if err := site.CopyStaticFiles(); err != nil {
		return err
	}
	return site.ProcessImages()
}
