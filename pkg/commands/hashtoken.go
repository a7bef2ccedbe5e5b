package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func hashToken(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		return fmt.Errorf("usage: hash-token <token>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", hash)
	return nil
}

func hashTokenCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-token",
		Usage:     "print the bcrypt hash of a bearer token for --auth-token-hash",
		ArgsUsage: "<token>",
		Action:    hashToken,
	}
}
