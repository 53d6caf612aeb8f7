package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"gocloud.dev/gcerrors"
	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
)

// DefaultKMSTimeout bounds a single seal or unseal round trip.
const DefaultKMSTimeout = 10 * time.Second

// kmsSchemes are the key URI schemes with a registered keeper driver.
var kmsSchemes = []string{"awskms", "azurekeyvault", "base64key", "gcpkms", "hashivault"}

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a keeper for keyURI. A URI whose scheme has no driver, or
// that the driver refuses, is ErrInvalidArgument. A driver that cannot reach
// its key service is ErrAlgorithmUnavailable.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	u, err := url.Parse(keyURI)
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("open kms keeper", cryptoDomain.ErrInvalidArgument, err)
	}
	if !slices.Contains(kmsSchemes, u.Scheme) {
		return nil, cryptoDomain.NewCryptoError(
			"open kms keeper",
			cryptoDomain.ErrInvalidArgument,
			fmt.Errorf("unsupported kms key uri scheme %q", u.Scheme),
		)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		kind := cryptoDomain.ErrAlgorithmUnavailable
		if gcerrors.Code(err) == gcerrors.InvalidArgument {
			kind = cryptoDomain.ErrInvalidArgument
		}
		return nil, cryptoDomain.NewCryptoError("open kms keeper", kind, err)
	}
	return keeper, nil
}

// sealWithKMS encrypts plaintext under keyURI and returns standard base64.
func sealWithKMS(
	ctx context.Context,
	kmsService KMSService,
	keyURI string,
	plaintext []byte,
	timeout time.Duration,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	keeper, err := openKeeper(ctx, kmsService, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	sealed, err := keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return "", cryptoDomain.NewCryptoError("kms seal", kmsCallKind(ctx, err), err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// unsealWithKMS decodes a base64 ciphertext and decrypts it under keyURI.
// The caller owns the returned plaintext and should zero it.
func unsealWithKMS(
	ctx context.Context,
	kmsService KMSService,
	keyURI, ciphertext string,
	timeout time.Duration,
) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("kms unseal", cryptoDomain.ErrInvalidArgument, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	keeper, err := openKeeper(ctx, kmsService, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, cryptoDomain.NewCryptoError("kms unseal", kmsCallKind(ctx, err), err)
	}
	return plaintext, nil
}

// openKeeper classifies failures of KMSService implementations that do not
// return a CryptoError themselves.
func openKeeper(ctx context.Context, kmsService KMSService, keyURI string) (KMSKeeper, error) {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		var cryptoErr *cryptoDomain.CryptoError
		if errors.As(err, &cryptoErr) {
			return nil, err
		}
		return nil, cryptoDomain.NewCryptoError("open kms keeper", cryptoDomain.ErrAlgorithmUnavailable, err)
	}
	return keeper, nil
}

// kmsCallKind separates an unreachable key service from a ciphertext the key rejects.
func kmsCallKind(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return cryptoDomain.ErrAlgorithmUnavailable
	}
	switch gcerrors.Code(err) {
	case gcerrors.DeadlineExceeded, gcerrors.Canceled, gcerrors.PermissionDenied, gcerrors.ResourceExhausted:
		return cryptoDomain.ErrAlgorithmUnavailable
	default:
		return cryptoDomain.ErrCryptoFailure
	}
}
