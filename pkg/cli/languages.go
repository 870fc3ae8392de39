package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/codebind/pkg/domain/model"
)

func cmdLanguages(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List supported code binding languages",
		Action: func(ctx context.Context, c *cli.Command) error {
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tAPI VALUE\tEXTENSION")
			for _, lang := range model.Languages() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", lang.DisplayName, lang.APIValue, lang.Extension)
			}
			return tw.Flush()
		},
	}
}

func cmdCoreFile(stdout io.Writer) *cli.Command {
	var schema, language string

	return &cli.Command{
		Name:  "core-file",
		Usage: "Print the core source file name generated for a schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "schema",
				Aliases:     []string{"s"},
				Usage:       "Schema name",
				Required:    true,
				Destination: &schema,
			},
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "Code binding language",
				Value:       "Java8",
				Destination: &language,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			lang, err := model.LookupLanguage(language)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, model.CoreFileName(schema, lang.Extension))
			return nil
		},
	}
}
