// Package collaborator talks to the opaque, project-specific "collaborator"
// process: a single executable the updater shells out to for everything it
// doesn't want to know project-specific details about (how tags are listed,
// how a blob's content is fetched, how a file is tokenized into identifier
// occurrences). Grounded on non_gen_update.py's script/scriptLines helper
// calls (list-blobs, list-tags, parse-defs, parse-docs, tokenize-file,
// get-blob, dts-comp), whose own implementation lives outside the retrieved
// source pack.
package collaborator

import "context"

// Collaborator runs one collaborator subcommand and returns its output.
// Implementations own argv construction, timeouts and exit-status handling;
// callers only see stdout.
type Collaborator interface {
	// Script runs args and returns stdout verbatim — used for
	// single-value answers like "dts-comp" or "get-blob <hash>".
	Script(ctx context.Context, args ...string) ([]byte, error)

	// ScriptLines runs args and returns stdout split into lines with the
	// trailing newline removed from each — used for list-formatted
	// answers like "list-tags", "list-blobs -f <tag>", "parse-defs ...",
	// "tokenize-file ...".
	ScriptLines(ctx context.Context, args ...string) ([]string, error)
}
