package morsk

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Match machine words against hex digit patterns"
	MsgMatchShort      = "Match a word against a pattern"
	MsgDecodeShort     = "Decode words with a pattern table"
	MsgDigitsShort     = "Show the hex digits of a word"
	MsgDigitsLong      = "Digits prints the hex digit decomposition of WORD, most significant digit first, as the matcher sees it."
	MsgTablesShort     = "List tables or the entries of one table"
	MsgTablesLong      = "Without arguments, tables lists every table morsk can find. With a NAME or PATH it prints that table's entries and warns about entries shadowed by earlier ones."
	MsgConfigShort     = "Show the effective configuration"
	MsgConfigLong      = "Config prints the configuration after every layer (defaults, user file, environment and flags) has been applied."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Man writes one man page per command into DIR."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Results
	MsgConfigWritten = "Wrote %s\n"
	MsgManWritten    = "Man pages written to %s\n"
	MsgVersionFormat = "morsk version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrReadStdin   = "failed to read words from standard input: %w"
	MsgErrNoWords     = "no words to decode"
	MsgErrBadFormat   = "invalid --format: %w"
	MsgErrManDir      = "failed to create %s: %w"
	MsgErrGenerateMan = "failed to generate man pages: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Configuration file (default $XDG_CONFIG_HOME/morsk/config.toml)"
	MsgFlagFormat  = "Output format: text, json, yaml or toml"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagPolicy  = "Wildcard policy: inclusive, exclusive or single"
	MsgFlagWidth   = "Word width: u8, u16, u32, u64 or u128"
	MsgFlagTable   = "Table name or path"
	MsgFlagAll     = "Show every matching entry, not only the first"
	MsgFlagWorkers = "Decoding goroutines (0 for one per CPU)"
	MsgFlagInit    = "Write a commented configuration file"
	MsgFlagForce   = "Overwrite an existing file with --init"
	MsgFlagPath    = "Print the configuration file path"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/match-example.txt
	msgMatchExampleRaw string
	MsgMatchExample    = strings.TrimRight(msgMatchExampleRaw, "\n")

	//go:embed msgs/decode-long.txt
	msgDecodeLongRaw string
	MsgDecodeLong    = strings.TrimSpace(msgDecodeLongRaw)

	//go:embed msgs/decode-example.txt
	msgDecodeExampleRaw string
	MsgDecodeExample    = strings.TrimRight(msgDecodeExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
