// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	validation "github.com/jellydator/validation"

	"github.com/allisson/fieldvault/internal/app"
	customValidation "github.com/allisson/fieldvault/internal/validation"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// readPassphrase returns passphrase when set, otherwise the first line of reader.
func readPassphrase(passphrase string, reader io.Reader) (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}
	if reader == nil {
		return "", errors.New("passphrase is required")
	}

	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// validatePassphrase enforces the passphrase strength policy for operator supplied passphrases.
func validatePassphrase(passphrase string) error {
	err := validation.Validate(passphrase,
		validation.Required,
		customValidation.NoWhitespace,
		customValidation.DefaultPassphraseStrength,
	)
	if err != nil {
		return fmt.Errorf("invalid passphrase: %w", customValidation.WrapValidationError(err))
	}
	return nil
}
