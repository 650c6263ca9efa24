// Package cli implements the command-line interface for the aclmgr tool.
//
// # Commands
//
// check - Validate a ruleset configuration:
//
//	aclmgr check ruleset.yaml
//	aclmgr check --expand --format yaml --output rules.yaml ruleset.yaml
//
// Loads the configuration, batch-validates every embedded rule line, and
// reports every diagnostic with its 1-based line and column. With --expand
// the validated ruleset is expanded before being written out.
//
// generate - Render vendor configuration:
//
//	aclmgr generate --output ./out ruleset.yaml
//	ACLMGR_PLATFORMS_PATH=./platforms aclmgr generate ruleset.yaml
//
// Runs the full pipeline: parse, expand, device and interface validation,
// then template rendering to one file per device and direction.
//
// Global --debug and --verbose flags gate slog output; debug wins when both
// are set.
package cli
