// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Category identifies which list of a letter a party belongs to.
type Category string

const (
	CategorySender    Category = "sender"
	CategoryRecipient Category = "recipient"
	CategoryCC        Category = "cc"
)

// Categories lists every category in the order the form prints them.
var Categories = []Category{CategorySender, CategoryRecipient, CategoryCC}

// Label returns the form label for the category (寄件人, 收件人, 副本收件人).
func (c Category) Label() string {
	switch c {
	case CategorySender:
		return "寄件人"
	case CategoryRecipient:
		return "收件人"
	case CategoryCC:
		return "副本收件人"
	}
	return string(c)
}

// ParseCategory converts a user-supplied name into a Category. It accepts the
// canonical names plus the plural forms used in letter files.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "sender", "senders":
		return CategorySender, nil
	case "recipient", "recipients":
		return CategoryRecipient, nil
	case "cc", "cc_recipient", "cc_recipients":
		return CategoryCC, nil
	}
	return "", fmt.Errorf("unknown party category %q (must be sender, recipient, or cc)", s)
}

// Party is a named entity acting as sender, recipient, or cc-recipient.
type Party struct {
	// ID is an opaque identifier. The form container assigns UUIDs; letter
	// files may leave it empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is the party's name as printed on the form.
	Name string `json:"name" yaml:"name" validate:"required,notblank"`

	// Address is the party's full postal address.
	Address string `json:"address" yaml:"address" validate:"required,notblank"`
}

// LetterData is everything needed to render one certified letter.
//
// Senders and Recipients must be non-empty and Content must contain a
// non-whitespace character before generation; collaborators enforce this,
// the renderer does not.
type LetterData struct {
	Senders      []Party `json:"senders" yaml:"senders" validate:"required,min=1,dive"`
	Recipients   []Party `json:"recipients" yaml:"recipients" validate:"required,min=1,dive"`
	CCRecipients []Party `json:"cc_recipients" yaml:"cc_recipients" validate:"dive"`
	Content      string  `json:"content" yaml:"content" validate:"required,notblank"`
}

// Parties returns the list for the given category.
func (d LetterData) Parties(c Category) []Party {
	switch c {
	case CategorySender:
		return d.Senders
	case CategoryRecipient:
		return d.Recipients
	case CategoryCC:
		return d.CCRecipients
	}
	return nil
}
