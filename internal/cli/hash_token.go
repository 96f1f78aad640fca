package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/lexscheduler/internal/auth"
)

// HashTokenCommand prints the bcrypt hash for API_TOKEN_HASH. Without -token
// a random token is generated and printed too.
type HashTokenCommand struct {
	Token string
	Cost  int

	Out io.Writer
}

func NewHashTokenCommand() *HashTokenCommand {
	return &HashTokenCommand{Out: os.Stdout}
}

func (cmd *HashTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-token", flag.ExitOnError)

	fs.StringVar(&cmd.Token, "token", "", "API token to hash (generated when empty)")
	fs.IntVar(&cmd.Cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-token [-token <token>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a bcrypt hash to use as API_TOKEN_HASH.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HashTokenCommand) Run() error {
	token := cmd.Token
	if token == "" {
		generated, err := auth.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		token = generated
		fmt.Fprintf(cmd.Out, "Token: %s\n", token)
	}

	hash, err := auth.HashToken(token, cmd.Cost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	fmt.Fprintf(cmd.Out, "API_TOKEN_HASH=%s\n", hash)
	return nil
}
