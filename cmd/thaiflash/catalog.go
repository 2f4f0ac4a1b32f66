package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/thaiflash/internal/alphabet"
	"github.com/vytor/thaiflash/internal/models"
)

var flagCatalogTypes []string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the alphabet",
	Long: `List alphabet items in catalog order.

Examples:
  thaiflash catalog
  thaiflash catalog --type consonant
  thaiflash catalog --type vowel,tone`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringSliceVar(&flagCatalogTypes, "type", nil, "Only these types: consonant, vowel, tone, other")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	items, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if len(flagCatalogTypes) > 0 {
		types := make([]models.AlphabetType, 0, len(flagCatalogTypes))
		for _, t := range flagCatalogTypes {
			at := models.AlphabetType(t)
			if !at.Valid() {
				return fmt.Errorf("unknown alphabet type %q", t)
			}
			types = append(types, at)
		}
		items = alphabet.FilterByTypes(items, types)
	}

	return printCatalog(cmd, alphabet.SortByOrder(items))
}

func printCatalog(cmd *cobra.Command, items []models.AlphabetItem) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSYMBOL\tTYPE\tNAME\tTHAI\tMEANING")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.Order, it.Symbol, it.Type, it.TransliteratedName(), it.NativeName(), it.Meaning)
	}
	fmt.Fprintf(w, "\n%d items\n", len(items))
	return w.Flush()
}
