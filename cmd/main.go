package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/src/auth"
	"tradejournal/src/database"
	"tradejournal/src/mapper"
	"tradejournal/src/repository"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Trade Journal CMD"
	app.Usage = "The trade journal command line interface"

	app.Commands = []cli.Command{
		importCMD,
		keysCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	importCMD = cli.Command{
		Name:      "import",
		Usage:     "import trades from a CSV file",
		Action:    importAction,
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			cli.UintFlag{Name: "user", Usage: "user ID owning the imported trades", Required: true},
		},
		Description: `Bulk-load trades from a CSV export into the journal`,
	}
	keysCMD = cli.Command{
		Name:      "keys",
		Usage:     "mint an API key",
		Action:    keysAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.UintFlag{Name: "user", Usage: "user ID the key authenticates", Required: true},
			cli.StringFlag{Name: "label", Usage: "free-form key label", Value: "default"},
		},
		Description: `Generate an API key and print the plaintext once`,
	}
)

func importAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: import --user ID FILE")
	}
	userID := uint(c.Uint("user"))

	logrus.WithFields(logrus.Fields{"cmd": "import", "file": path, "user_id": userID}).
		Info("Starting CSV import CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	trades, rowErrs, err := mapper.ParseTradesCSV(file, userID)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		logrus.WithFields(logrus.Fields{"line": rowErr.Line}).Warn(rowErr.Err)
	}

	if len(trades) > 0 {
		repo := repository.NewTradeRepository()
		if err := repo.BulkCreate(context.Background(), trades); err != nil {
			logrus.WithError(err).Error("Importing trades")
			return err
		}
	}

	fmt.Printf("imported %d trades, skipped %d rows\n", len(trades), len(rowErrs))
	return nil
}

func keysAction(c *cli.Context) error {
	userID := uint(c.Uint("user"))

	logrus.WithFields(logrus.Fields{"cmd": "keys", "user_id": userID}).
		Info("Starting key generation CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	repo := repository.NewUserRepository()
	user, err := repo.FindByID(context.Background(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d not found", userID)
	}

	plaintext, key, err := auth.GenerateAPIKey(userID, c.String("label"))
	if err != nil {
		return err
	}
	if err := repo.CreateAPIKey(context.Background(), key); err != nil {
		return err
	}

	// the secret is not recoverable later; only the bcrypt hash is stored
	fmt.Printf("API key (save it now, it is shown only once):\n%s\n", plaintext)
	return nil
}
