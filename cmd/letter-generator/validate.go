// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/squarer/letter-generator/internal/form"
	"github.com/squarer/letter-generator/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [letter files...]",
	Short: "Check letter files without generating documents",
	Long: `Validate checks each letter file against the letter schema and then
applies the same rules as generate: at least one sender and one recipient,
every party with a name and an address, and a body with visible text.

--schema prints the JSON schema instead.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if printSchema, _ := cmd.Flags().GetBool("schema"); printSchema {
		_, err := io.WriteString(w, schemas.LetterSchema())
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one letter file is required")
	}

	invalid := 0
	for _, path := range args {
		data, err := readLetter(cmd.InOrStdin(), path)
		if err == nil {
			err = form.Validate(data)
		}
		if err != nil {
			invalid++
			fmt.Fprintf(w, "invalid: %s\n", path)
			for _, msg := range problems(err) {
				fmt.Fprintf(w, "  - %s\n", msg)
			}
			continue
		}
		fmt.Fprintf(w, "valid:   %s\n", path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d letter(s) invalid", invalid, len(args))
	}
	return nil
}

// problems lists the individual messages carried by a validation error.
func problems(err error) []string {
	var fe *form.ValidationError
	if errors.As(err, &fe) {
		return fe.Messages
	}
	var se *schemas.ValidationError
	if errors.As(err, &se) {
		msgs := make([]string, len(se.Errors))
		for i, e := range se.Errors {
			msgs[i] = e.Field + ": " + e.Message
		}
		return msgs
	}
	return []string{err.Error()}
}

func init() {
	validateCmd.Flags().Bool("schema", false, "print the letter JSON schema and exit")
	rootCmd.AddCommand(validateCmd)
}
