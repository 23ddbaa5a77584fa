package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte master key and prints the MASTER_KEYS and
// ACTIVE_MASTER_KEY_ID lines to configure it. When kmsKeyURI is set the key is
// encrypted with that KMS key and the ciphertext is printed instead. The key
// material is zeroed before returning.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyID string,
	kmsKeyURI string,
) error {
	if keyID == "" {
		keyID = fmt.Sprintf("master-key-%s", time.Now().UTC().Format("2006-01-02"))
	}

	masterKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	encoded := masterKey
	if kmsKeyURI != "" {
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Warn("failed to close kms keeper", slog.Any("error", closeErr))
			}
		}()

		encoded, err = keeper.Encrypt(ctx, masterKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
		}
	}

	value := base64.StdEncoding.EncodeToString(encoded)

	logger.Info("master key generated", slog.String("key_id", keyID), slog.Bool("kms", kmsKeyURI != ""))

	_, _ = fmt.Fprintln(writer, "# Add to your .env file or secrets manager")
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyID, value)
	_, _ = fmt.Fprintf(writer, "ACTIVE_MASTER_KEY_ID=\"%s\"\n", keyID)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# To rotate, append the new key and switch the active id; keep old keys")
	_, _ = fmt.Fprintln(writer, "# listed until every credential has been re-saved with the new key:")
	_, _ = fmt.Fprintf(writer, "# MASTER_KEYS=\"%s:%s,new-key:<base64>\"\n", keyID, value)
	return nil
}
