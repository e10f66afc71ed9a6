// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/squarer/letter-generator/internal/form"
	"github.com/squarer/letter-generator/internal/letter"
	"github.com/squarer/letter-generator/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new [letter file]",
	Short: "Write a letter file template",
	Long: `New writes a letter file (.yaml, .yml, or .json) to fill in and pass to
generate. Parties given with --sender-id, --recipient-id, and --cc-id are
taken from the address book; categories without any get a placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := letter.FormatOf(path)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data := types.LetterData{}
	if hasPartyIDs(cmd) {
		if data, err = appendAddressBookParties(cmd.Context(), cmd, data); err != nil {
			return err
		}
	}

	if len(data.Senders) == 0 {
		data.Senders = []types.Party{{Name: "寄件人姓名", Address: "詳細地址"}}
	}
	if len(data.Recipients) == 0 {
		data.Recipients = []types.Party{{Name: "收件人姓名", Address: "詳細地址"}}
	}
	if data.CCRecipients == nil {
		data.CCRecipients = []types.Party{}
	}
	data.Content = "（請在此輸入信函內文）"
	if err := form.Validate(data); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := letter.Encode(f, data, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", path)
	return nil
}

func init() {
	newCmd.Flags().Bool("force", false, "overwrite an existing file")
	newCmd.Flags().StringSlice("sender-id", nil, "take senders from the address book")
	newCmd.Flags().StringSlice("recipient-id", nil, "take recipients from the address book")
	newCmd.Flags().StringSlice("cc-id", nil, "take cc-recipients from the address book")
	newCmd.Flags().String("data-dir", "", "address book directory (default: config address_book.data_dir)")

	rootCmd.AddCommand(newCmd)
}
