package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fieldvault/cmd/app/commands"
	"github.com/allisson/fieldvault/internal/app"
	"github.com/allisson/fieldvault/internal/config"
	cryptoService "github.com/allisson/fieldvault/internal/crypto/service"
	"github.com/allisson/fieldvault/internal/keyring"
)

var accountFlag = &cli.StringFlag{
	Name:    "account",
	Aliases: []string{"a"},
	Value:   "default",
	Usage:   "Keyring account name",
}

var passphraseFlag = &cli.StringFlag{
	Name:    "passphrase",
	Aliases: []string{"p"},
	Usage:   "Passphrase to use (read from stdin when omitted)",
}

func getPassphraseCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-passphrase",
			Usage: "Generate a random passphrase for the static provider",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGeneratePassphrase(
					cryptoService.NewRandomPassphraseSource(),
					commands.DefaultIO().Writer,
				)
			},
		},
		{
			Name:  "hash-passphrase",
			Usage: "Print the Argon2id hash checked against the passphrase at startup",
			Flags: []cli.Flag{passphraseFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				verifier, err := cryptoService.NewPassphraseVerifier()
				if err != nil {
					return err
				}
				return commands.RunHashPassphrase(verifier, commands.DefaultIO(), cmd.String("passphrase"))
			},
		},
		{
			Name:  "seal-passphrase",
			Usage: "Encrypt a passphrase with a KMS key for the kms provider",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Value:    "",
					Required: true,
					Usage:    "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
				passphraseFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunSealPassphrase(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("kms-key-uri"),
					cmd.String("passphrase"),
				)
			},
		},
		{
			Name:  "store-passphrase",
			Usage: "Store a passphrase in the OS keyring for the keyring provider",
			Flags: []cli.Flag{
				accountFlag,
				passphraseFlag,
				&cli.BoolFlag{
					Name:  "overwrite",
					Usage: "Replace a passphrase already stored for the account",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunStorePassphrase(
					keyring.Store{},
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("account"),
					cmd.String("passphrase"),
					cmd.Bool("overwrite"),
				)
			},
		},
		{
			Name:  "delete-passphrase",
			Usage: "Remove a passphrase from the OS keyring",
			Flags: []cli.Flag{accountFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunDeletePassphrase(keyring.Store{}, container.Logger(), cmd.String("account"))
			},
		},
	}
}
