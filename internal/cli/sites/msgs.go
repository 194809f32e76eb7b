package sites

import (
	_ "embed"
	"strings"
)

const (
	// Command descriptions
	MsgChangesShort = "Get recent changes for federated wiki sites"
	MsgPrintShort   = "Format a federated wiki site for printing"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSettings = "Tool settings file (default $XDG_CONFIG_HOME/wikikit/config.toml)"
	MsgFlagFormat   = "Output format: auto, term or text"
	MsgFlagPod      = "Look for changes in the learning pod"
	MsgFlagSite     = "Look for changes in the specified site"
	MsgFlagDays     = "Only list changes within the number of days specified (0 lists every page)"
	MsgFlagTarget   = "The site to format"
	MsgFlagOutput   = "File to write the HTML document to"
	MsgFlagTerminal = "Render to the terminal instead of writing HTML"
	MsgFlagAll      = "Include every page of the sitemap, not just the newest"
	MsgFlagWidth    = "Wrap terminal output at this width"

	// Result messages
	MsgWrote = "Wrote %s (%d pages)"

	// Error messages
	MsgErrNoSite    = "pass --site or --pod"
	MsgErrNegative  = "--days must not be negative"
	MsgErrEmptySite = "%s has no pages to print"
)

var (
	//go:embed msgs/changes-long.txt
	msgChangesLongRaw string
	MsgChangesLong    = strings.TrimSpace(msgChangesLongRaw)

	//go:embed msgs/changes-example.txt
	msgChangesExampleRaw string
	MsgChangesExample    = strings.TrimSpace(msgChangesExampleRaw)

	//go:embed msgs/print-long.txt
	msgPrintLongRaw string
	MsgPrintLong    = strings.TrimSpace(msgPrintLongRaw)
)
