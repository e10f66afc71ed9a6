// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form holds the editable state of a letter before it is generated:
// three party lists and the letter body, with the checks that must pass
// before a document is produced.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	"github.com/squarer/letter-generator/pkg/types"
)

// User-facing validation messages.
const (
	MsgPartiesRequired = "請至少填寫一位寄件人和一位收件人"
	MsgContentRequired = "請填寫信函內文"
	MsgPartyIncomplete = "請填寫姓名和地址"
)

// ErrPartyNotFound is returned when an update targets an unknown party ID.
var ErrPartyNotFound = errors.New("party not found")

// ValidationError lists the messages of every failed check.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("registering notblank validation: %v", err))
	}
	return v
}

// State is the mutable letter being edited. Lists are replaced, never
// modified in place, so slices handed out by Parties or LetterData stay
// valid after later edits.
type State struct {
	senders      []types.Party
	recipients   []types.Party
	ccRecipients []types.Party
	content      string

	// newID assigns identifiers to added parties.
	newID func() string
}

// New returns an empty State.
func New() *State {
	return &State{newID: uuid.NewString}
}

// FromLetter returns a State pre-filled with data. Parties without an ID are
// given one.
func FromLetter(data types.LetterData) *State {
	s := New()
	s.senders = s.withIDs(data.Senders)
	s.recipients = s.withIDs(data.Recipients)
	s.ccRecipients = s.withIDs(data.CCRecipients)
	s.content = data.Content
	return s
}

func (s *State) withIDs(ps []types.Party) []types.Party {
	out := make([]types.Party, 0, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			p.ID = s.newID()
		}
		out = append(out, p)
	}
	return out
}

func (s *State) list(c types.Category) *[]types.Party {
	switch c {
	case types.CategorySender:
		return &s.senders
	case types.CategoryRecipient:
		return &s.recipients
	case types.CategoryCC:
		return &s.ccRecipients
	}
	return nil
}

// Parties returns the parties of a category in insertion order.
func (s *State) Parties(c types.Category) []types.Party {
	l := s.list(c)
	if l == nil {
		return nil
	}
	return *l
}

// Add appends a party to a category. Name and address are trimmed and both
// must be non-empty.
func (s *State) Add(c types.Category, name, address string) (types.Party, error) {
	l := s.list(c)
	if l == nil {
		return types.Party{}, fmt.Errorf("unknown party category %q", c)
	}
	p, err := newParty(s.newID(), name, address)
	if err != nil {
		return types.Party{}, err
	}
	next := make([]types.Party, len(*l), len(*l)+1)
	copy(next, *l)
	*l = append(next, p)
	return p, nil
}

// Update replaces the name and address of the party with the given ID.
func (s *State) Update(c types.Category, id, name, address string) error {
	l := s.list(c)
	if l == nil {
		return fmt.Errorf("unknown party category %q", c)
	}
	p, err := newParty(id, name, address)
	if err != nil {
		return err
	}
	next := make([]types.Party, len(*l))
	found := false
	for i, existing := range *l {
		if existing.ID == id {
			next[i] = p
			found = true
			continue
		}
		next[i] = existing
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPartyNotFound, id)
	}
	*l = next
	return nil
}

// Remove deletes the party with the given ID and reports whether it existed.
func (s *State) Remove(c types.Category, id string) bool {
	l := s.list(c)
	if l == nil {
		return false
	}
	next := make([]types.Party, 0, len(*l))
	for _, p := range *l {
		if p.ID != id {
			next = append(next, p)
		}
	}
	removed := len(next) != len(*l)
	*l = next
	return removed
}

// Content returns the letter body.
func (s *State) Content() string {
	return s.content
}

// SetContent replaces the letter body.
func (s *State) SetContent(content string) {
	s.content = content
}

// ClearAll empties every list and the body.
func (s *State) ClearAll() {
	s.senders, s.recipients, s.ccRecipients = nil, nil, nil
	s.content = ""
}

// LetterData snapshots the state. The CC list is never nil.
func (s *State) LetterData() types.LetterData {
	cc := s.ccRecipients
	if cc == nil {
		cc = []types.Party{}
	}
	return types.LetterData{
		Senders:      s.senders,
		Recipients:   s.recipients,
		CCRecipients: cc,
		Content:      s.content,
	}
}

// Validate checks that the letter can be generated: at least one sender and
// one recipient, every party complete, and a body with visible text.
func (s *State) Validate() error {
	return Validate(s.LetterData())
}

// Validate runs the generation checks on a letter.
func Validate(data types.LetterData) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var msgs []string
	seen := map[string]bool{}
	add := func(m string) {
		if !seen[m] {
			seen[m] = true
			msgs = append(msgs, m)
		}
	}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Senders", "Recipients":
			add(MsgPartiesRequired)
		case "Content":
			add(MsgContentRequired)
		case "Name", "Address":
			add(MsgPartyIncomplete)
		default:
			add(fe.Error())
		}
	}
	return &ValidationError{Messages: msgs}
}

func newParty(id, name, address string) (types.Party, error) {
	p := types.Party{ID: id, Name: strings.TrimSpace(name), Address: strings.TrimSpace(address)}
	if err := validate.Struct(p); err != nil {
		return types.Party{}, &ValidationError{Messages: []string{MsgPartyIncomplete}}
	}
	return p, nil
}
