package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	hierarchyUseCase "github.com/allisson/credvault/internal/hierarchy/usecase"
)

// RunCreateOU creates an organizational unit. OUs have no HTTP create endpoint, so
// this is how the hierarchy is provisioned.
func RunCreateOU(
	ctx context.Context,
	hierarchy hierarchyUseCase.HierarchyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	description string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("--name is required")
	}

	ou, err := hierarchy.CreateOU(ctx, name, strings.TrimSpace(description))
	if err != nil {
		return fmt.Errorf("failed to create organizational unit: %w", err)
	}

	logger.Info("organizational unit created", slog.String("ou_id", ou.ID.String()), slog.String("name", ou.Name))

	if format == formatJSON {
		return writeJSON(writer, map[string]string{
			"id":          ou.ID.String(),
			"name":        ou.Name,
			"description": ou.Description,
		})
	}
	_, _ = fmt.Fprintf(writer, "Organizational unit created\nID:   %s\nName: %s\n", ou.ID, ou.Name)
	return nil
}
