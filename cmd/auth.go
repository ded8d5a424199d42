package cmd

import (
	"errors"
	"fmt"
	"os"

	"kb-admin/core/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// authCmd is the parent command for the password gate.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the admin password",
}

// hashPasswordCmd prints a bcrypt hash for AUTH_PASSWORD_HASH.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Prompt for a password and print its hash for AUTH_PASSWORD_HASH",
	RunE: func(cmd *cobra.Command, args []string) error {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return errors.New("hash-password needs an interactive terminal")
		}

		fmt.Fprint(os.Stderr, "Password: ")
		first, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, "Repeat password: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		if string(first) != string(second) {
			return errors.New("passwords do not match")
		}

		hash, err := auth.HashPassword(string(first))
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	authCmd.AddCommand(hashPasswordCmd)
	RootCmd.AddCommand(authCmd)
}
