// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the letter-generator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/squarer/letter-generator/internal/convert"
	"github.com/squarer/letter-generator/internal/letter"
	"github.com/squarer/letter-generator/internal/reflow"
	"github.com/squarer/letter-generator/internal/render"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the letter-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "letter-generator",
	Short: "Generate 郵局存證信函 (registered-mail certification) forms as .docx",
	Long: `letter-generator fills in the post office certified letter form. It reads
a letter file (senders, recipients, cc-recipients, and body text), reflows
the body into the form's 20 x 10 character grid, and writes one form page per
200 characters to a Word document.

A local address book stores parties for reuse, and generated documents can
be converted to PDF through a LibreOffice container image.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./letter-generator.yaml or ~/.config/letter-generator/letter-generator.yaml)")
}

func setDefaults() {
	viper.SetDefault("generation.font", render.DefaultFont)
	viper.SetDefault("generation.columns", reflow.DefaultColumns)
	viper.SetDefault("generation.rows", reflow.DefaultRows)
	viper.SetDefault("generation.widen_ascii", false)
	viper.SetDefault("generation.output_dir", ".")
	viper.SetDefault("generation.file_name", letter.DefaultFileName)
	viper.SetDefault("generation.jobs", 4)
	viper.SetDefault("address_book.data_dir", defaultDataDir())
	viper.SetDefault("address_book.max_results", 20)
	viper.SetDefault("conversion.image", convert.DefaultImage)
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".letter-generator"
	}
	return filepath.Join(dir, "letter-generator")
}

func initConfig() {
	_ = godotenv.Load()
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("letter-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "letter-generator"))
		}
	}

	viper.SetEnvPrefix("LETTER_GENERATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
