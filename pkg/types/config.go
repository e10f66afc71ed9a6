// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GenerationConfig holds settings for document generation.
type GenerationConfig struct {
	// Font is the typeface used for every run in the document (default 標楷體).
	Font string `json:"font" yaml:"font"`

	// Columns is the number of character cells per grid row (default 20).
	Columns int `json:"columns" yaml:"columns"`

	// Rows is the number of grid rows per page (default 10).
	Rows int `json:"rows" yaml:"rows"`

	// WidenASCII folds half-width ASCII to full-width forms so every grid
	// cell holds a full-width character.
	WidenASCII bool `json:"widen_ascii" yaml:"widen_ascii"`

	// OutputDir is where batch generation writes documents (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// FileName is the file name used when the output path is a directory
	// (default 存證信函.docx).
	FileName string `json:"file_name" yaml:"file_name"`

	// Jobs is the number of letters generated concurrently in batch mode.
	Jobs int `json:"jobs" yaml:"jobs"`
}

// AddressBookConfig holds settings for the local party address book.
type AddressBookConfig struct {
	// DataDir is the directory holding addressbook.db.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ConversionConfig holds settings for the optional PDF conversion step.
type ConversionConfig struct {
	// Image is the container image that reads a .docx on stdin and writes a
	// PDF on stdout.
	Image string `json:"image" yaml:"image"`
}

// Config groups all configuration sections.
type Config struct {
	Generation  GenerationConfig  `json:"generation" yaml:"generation"`
	AddressBook AddressBookConfig `json:"address_book" yaml:"address_book"`
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion"`
}
