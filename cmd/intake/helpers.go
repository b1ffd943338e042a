package main

import (
	"github.com/spf13/cobra"

	"github.com/lstw2025/sv-documentation-platform/internal/adapters/file"
	"github.com/lstw2025/sv-documentation-platform/internal/adapters/memory"
	"github.com/lstw2025/sv-documentation-platform/internal/adapters/redis"
	"github.com/lstw2025/sv-documentation-platform/internal/definition"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
	"github.com/lstw2025/sv-documentation-platform/pkg/ports"
)

// resolveDefinition loads the --definition file, or falls back to the
// built-in intake survey.
func resolveDefinition(cmd *cobra.Command) (*domain.SurveyDefinition, error) {
	path, _ := cmd.Flags().GetString("definition")
	if path == "" {
		return definition.Builtin(), nil
	}
	return definition.LoadFile(path)
}

// resolveStore picks the draft store from the --store flag.
func resolveStore(cmd *cobra.Command) ports.StateStore {
	kind, _ := cmd.Flags().GetString("store")
	switch kind {
	case "file":
		dir, _ := cmd.Flags().GetString("sessions-dir")
		return file.New(dir)
	case "redis":
		addr, _ := cmd.Flags().GetString("redis")
		return redis.New(addr, "", 0)
	default:
		return memory.New()
	}
}
