package create

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Create a mostly self-contained federated wiki install"
	MsgRunShort      = "Start the wiki server of an install"
	MsgDeleteShort   = "Delete an install or parts of it"
	MsgStatusShort   = "Show what an install holds"
	MsgSettingsShort = "Print the effective tool settings"
	MsgVersionShort  = "Print version information"
	MsgManShort      = "Generate the man page"

	// Progress messages
	MsgPhaseRuntime = "Provisioning Node.js runtime..."
	MsgPhaseBundles = "Fetching wiki bundles..."
	MsgPhaseLink    = "Linking dependencies..."
	MsgPhaseSave    = "Writing install document..."

	// Result messages
	MsgAlreadyProvisioned = "%s already holds a wiki. Pass --update to reprovision it."
	MsgResumed            = "Resuming the unfinished install in %s"
	MsgCreated            = "Wiki ready in %s (%d downloads)"
	MsgStartHint          = "Start it with: wiki-create run --dir %s"
	MsgDeleted            = "Deleted %s of %s"
	MsgNothingDeleted     = "Nothing to delete: no %s in %s"
	MsgNotProvisioned     = "%s holds no completed install"
	MsgCheckpointFound    = "An unfinished install was found; rerun create to resume it"

	// Status labels
	MsgStatusDir     = "Directory"
	MsgStatusRuntime = "Runtime"
	MsgStatusBundles = "Bundles"
	MsgStatusSteps   = "Steps"
	MsgStatusNone    = "(none)"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDir      = "Directory holding the wiki install (default from settings, ~/wiki)"
	MsgFlagConfig   = "Install document to use instead of <dir>/config.yaml"
	MsgFlagSettings = "Tool settings file (default $XDG_CONFIG_HOME/wikikit/config.toml)"
	MsgFlagUpdate   = "Reprovision an existing install; artifacts on disk are reused"
	MsgFlagWiki     = "Wiki bundle as owner/repo[:branch]"
	MsgFlagServer   = "Server bundle as owner/repo[:branch]"
	MsgFlagClient   = "Client bundle as owner/repo[:branch]"
	MsgFlagPlugin   = "Plugin bundle as owner/repo[:branch] (repeatable)"
	MsgFlagNode     = "Node.js version to provision"
	MsgFlagFormat   = "Output format: auto, term or text"

	// Error messages
	MsgErrUnknownTarget = "unknown delete target %q; expected all, runtime, wiki, server or client"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimSpace(msgRootExampleRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/delete-long.txt
	msgDeleteLongRaw string
	MsgDeleteLong    = strings.TrimSpace(msgDeleteLongRaw)

	//go:embed msgs/delete-example.txt
	msgDeleteExampleRaw string
	MsgDeleteExample    = strings.TrimSpace(msgDeleteExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
