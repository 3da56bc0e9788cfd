package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gohashira/wtf/internal/htmlwriter"
	"github.com/gohashira/wtf/internal/markup"
)

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Render a single markup file to HTML on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := markup.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			body, err := htmlwriter.NewWriter().WriteDocument(doc)
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			title := htmlwriter.ExtractTitle(doc)
			fmt.Println(htmlwriter.WrapDocument(title, body))
			return nil
		},
	}
}
