package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/allisson/credvault/internal/authz"
	hierarchyUseCase "github.com/allisson/credvault/internal/hierarchy/usecase"
)

// RunCreateDivision creates a division under an existing OU.
func RunCreateDivision(
	ctx context.Context,
	hierarchy hierarchyUseCase.HierarchyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	ouID string,
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

	parsedOUID, err := authz.ParseRef(ouID)
	if err != nil {
		return fmt.Errorf("invalid --ou-id %q: %w", ouID, err)
	}

	division, err := hierarchy.CreateDivision(ctx, parsedOUID, name, strings.TrimSpace(description))
	if err != nil {
		return fmt.Errorf("failed to create division: %w", err)
	}

	logger.Info("division created",
		slog.String("division_id", division.ID.String()),
		slog.String("ou_id", division.OUID.String()),
		slog.String("name", division.Name),
	)

	if format == formatJSON {
		return writeJSON(writer, map[string]string{
			"id":          division.ID.String(),
			"ou_id":       division.OUID.String(),
			"name":        division.Name,
			"description": division.Description,
		})
	}
	_, _ = fmt.Fprintf(writer, "Division created\nID:    %s\nOU ID: %s\nName:  %s\n",
		division.ID, division.OUID, division.Name)
	return nil
}
