// Command elixir-query is a debug CLI over a query.Engine: each of the
// engine's named lookups (latest, versions, type, dir, file, family,
// dts-comp, keys, ident) gets its own subcommand, printed one result per
// line to stdout. Ported from registry/root.go's cobra RootCmd, trimmed of
// everything HTTP-serving and built around query.Engine instead.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/configuration"
	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/query"
	"github.com/bootlin/elixir/store"
	"github.com/bootlin/elixir/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "elixir-query",
	Short: "`elixir-query` inspects an elixir index from the command line",
	Long:  "`elixir-query` inspects an elixir index from the command line",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the project's configuration file")
	rootCmd.MarkPersistentFlagRequired("config")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(identCmd)
	rootCmd.AddCommand(familyCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(dtsCompCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		version.PrintVersion()
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "print the most recently indexed tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			tag, ok, err := e.Latest(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no tag is indexed yet")
			}
			fmt.Println(tag)
			return nil
		})
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "list every fully indexed tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			tags, err := e.Versions(ctx)
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Println(t)
			}
			return nil
		})
	},
}

var fileCmd = &cobra.Command{
	Use:   "file <tag> <path>",
	Short: "print the decoded text contents of a file within a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			content, err := e.File(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		})
	},
}

var dirCmd = &cobra.Command{
	Use:   "dir <tag> <path>",
	Short: "list the immediate children of a directory within a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			entries, err := e.Dir(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			for _, en := range entries {
				fmt.Printf("%s\t%s\t%d\t%o\n", en.Type, en.Name, en.Size, en.Mode)
			}
			return nil
		})
	},
}

var typeCmd = &cobra.Command{
	Use:   "type <tag> <path>",
	Short: "classify a path within a tag as tree, blob, or absent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			pt, err := e.Type(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(pt)
			return nil
		})
	},
}

var identCmd = &cobra.Command{
	Use:   "ident <tag> <identifier>",
	Short: "run the full definitions/references/doc-comments lookup for an identifier within a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			res, err := e.Ident(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printSymbolResult(res)
			return nil
		})
	},
}

var familyCmd = &cobra.Command{
	Use:   "family <C|K|D|M>",
	Short: "list every identifier ever defined in a file of the given family",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			idents, err := e.Family(ctx, family.Family(args[0]))
			if err != nil {
				return err
			}
			for _, id := range idents {
				fmt.Println(id)
			}
			return nil
		})
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys <C|K|D|M> <prefix>",
	Short: "list identifiers of the given family starting with prefix",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			keys, err := e.Keys(ctx, family.Family(args[0]), args[1])
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		})
	},
}

var dtsCompCmd = &cobra.Command{
	Use:   "dts-comp <tag> <compatible>",
	Short: "resolve a device-tree compatible string to its DTS and binding-doc occurrences within a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *query.Engine) error {
			res, err := e.DTSComp(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printSymbolResult(res)
			return nil
		})
	},
}

func printSymbolResult(res *query.SymbolResult) {
	for _, d := range res.Definitions {
		fmt.Printf("def\t%s:%d\t%s\t%s\n", d.Path, d.Line, d.Family, d.Type)
	}
	for _, r := range res.References {
		fmt.Printf("ref\t%s:%d\t%s\n", r.Path, r.Line, r.Family)
	}
	for _, c := range res.DocComments {
		fmt.Printf("doc\t%s:%d\t%s\n", c.Path, c.Line, c.Family)
	}
}

func withEngine(fn func(ctx context.Context, e *query.Engine) error) error {
	fp, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return fmt.Errorf("error parsing %s: %v", configPath, err)
	}

	db, err := store.Open(config.Project.DataDir, config.Project.DTSComp)
	if err != nil {
		return fmt.Errorf("open store at %s: %w", config.Project.DataDir, err)
	}
	defer db.Close()

	collab := &collaborator.Exec{
		Command:  config.Collaborator.Command,
		BaseArgs: config.Collaborator.Args,
		Timeout:  config.Collaborator.BlobTimeout,
	}

	return fn(context.Background(), query.NewEngine(db, collab))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
