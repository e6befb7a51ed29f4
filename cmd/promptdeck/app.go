package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/services"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

// openStore opens the catalog database at its default location.
func openStore() (*database.Store, error) {
	store := database.NewStore("")
	if err := store.Init(); err != nil {
		return nil, err
	}
	return store, nil
}

// deckRoots resolves the Markdown mirror directories for the claude
// namespace, project scope relative to the current working directory.
func deckRoots() services.Roots {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}
	return services.Roots{
		User:    config.PromptsDir(config.ToolClaude, scope.User, ""),
		Project: config.PromptsDir(config.ToolClaude, scope.Project, workingDir),
	}
}

// deckService builds the catalog service for one record kind.
func deckService(store *database.Store, kind catalog.Kind) *services.CatalogService {
	files := filestore.New(sysaccess.NewOS())
	return services.NewCatalogService(store, files, kind, deckRoots())
}

// parseKindFlag converts the --kind flag into a record kind.
func parseKindFlag(value string) (catalog.Kind, error) {
	switch catalog.Kind(value) {
	case catalog.KindPrompt, catalog.KindCommand:
		return catalog.Kind(value), nil
	default:
		return "", fmt.Errorf("invalid kind: %s (valid values: prompt, command)", value)
	}
}

// readContent reads record content from a file, or from stdin when no file
// is given.
func readContent(cmd *cobra.Command, filePath string) (string, error) {
	if filePath != "" {
		bytes, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Enter content (Ctrl-D when done):")
	}

	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// confirm asks a y/N question on stderr and reports the answer.
func confirm(cmd *cobra.Command, message string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(cmd.ErrOrStderr(), message)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "y", nil
}
