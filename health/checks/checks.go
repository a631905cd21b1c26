package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/health"
	"github.com/bootlin/elixir/store"
)

// FileChecker checks the existence of a file and returns an error
// if the file exists.
func FileChecker(f string) health.Checker {
	return health.CheckFunc(func(context.Context) error {
		absoluteFilePath, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %q: %v", f, err)
		}

		_, err = os.Stat(absoluteFilePath)
		if err == nil {
			return errors.New("file exists")
		} else if os.IsNotExist(err) {
			return nil
		}

		return err
	})
}

// CollaboratorChecker verifies the collaborator process can still be
// reached, by running its cheapest subcommand ("list-tags").
func CollaboratorChecker(c collaborator.Collaborator) health.Checker {
	return health.CheckFunc(func(ctx context.Context) error {
		if _, err := c.ScriptLines(ctx, "list-tags"); err != nil {
			return fmt.Errorf("collaborator unreachable: %w", err)
		}
		return nil
	})
}

// StoreChecker verifies the Versions table — the table the query engine
// and updater both depend on first — is still open and answering reads.
func StoreChecker(db *store.DB) health.Checker {
	return health.CheckFunc(func(ctx context.Context) error {
		if _, err := db.Versions.Exists(ctx, []byte("\x00health-check\x00")); err != nil {
			return fmt.Errorf("store unreachable: %w", err)
		}
		return nil
	})
}
