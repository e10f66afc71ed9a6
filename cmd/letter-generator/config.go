// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/squarer/letter-generator/internal/addressbook"
	"github.com/squarer/letter-generator/pkg/types"
)

// bindFlags maps command flags onto config keys so that a flag set on the
// command line overrides the config file and environment. Binding happens
// when the command runs because several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// generationFlags are the flags shared by generate and preview.
var generationFlags = map[string]string{
	"font":        "generation.font",
	"columns":     "generation.columns",
	"rows":        "generation.rows",
	"widen-ascii": "generation.widen_ascii",
	"output-dir":  "generation.output_dir",
	"jobs":        "generation.jobs",
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().String("font", "", "typeface for every run (default 標楷體)")
	cmd.Flags().Int("columns", 0, "grid columns per row (default 20)")
	cmd.Flags().Int("rows", 0, "grid rows per page (default 10)")
	cmd.Flags().Bool("widen-ascii", false, "print half-width characters in full-width form")
}

func loadConfig() types.Config {
	return types.Config{
		Generation: types.GenerationConfig{
			Font:       viper.GetString("generation.font"),
			Columns:    viper.GetInt("generation.columns"),
			Rows:       viper.GetInt("generation.rows"),
			WidenASCII: viper.GetBool("generation.widen_ascii"),
			OutputDir:  viper.GetString("generation.output_dir"),
			FileName:   viper.GetString("generation.file_name"),
			Jobs:       viper.GetInt("generation.jobs"),
		},
		AddressBook: types.AddressBookConfig{
			DataDir:    viper.GetString("address_book.data_dir"),
			MaxResults: viper.GetInt("address_book.max_results"),
		},
		Conversion: types.ConversionConfig{
			Image: viper.GetString("conversion.image"),
		},
	}
}

// addressBookFlags are shared by the parties commands and generate.
var addressBookFlags = map[string]string{
	"data-dir":    "address_book.data_dir",
	"max-results": "address_book.max_results",
}

func openAddressBook(cmd *cobra.Command) (*addressbook.Store, error) {
	if err := bindFlags(cmd, addressBookFlags); err != nil {
		return nil, err
	}
	return addressbook.NewStore(loadConfig().AddressBook)
}
