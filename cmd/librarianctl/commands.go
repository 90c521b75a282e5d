package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"librarian/internal/book"
	"librarian/internal/platform/crypto"
	"librarian/internal/user"
)

type userAdmin interface {
	CreateAdmin(ctx context.Context, name, email, password string) (user.User, error)
	SetRole(ctx context.Context, email, role string) (user.User, error)
}

type bookImporter interface {
	Import(ctx context.Context, inputs []book.Input) (book.ImportResult, error)
}

type revocationPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type app struct {
	users        userAdmin
	books        bookImporter
	revocations  revocationPurger
	out          io.Writer
	readPassword func(prompt string) (string, error)
	closeFn      func()
}

func newRootCmd(a *app, connect func(ctx context.Context) error) *cobra.Command {
	root := &cobra.Command{
		Use:          "librarianctl",
		Short:        "Administrative tasks for the library service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if connect == nil {
				return nil
			}
			return connect(cmd.Context())
		},
	}
	root.SetOut(a.out)

	root.AddCommand(newUserCmd(a), newBookCmd(a), newExpireRevocationsCmd(a))
	return root
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var name, email string
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account (password is prompted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if err := crypto.ValidatePasswordStrength(password); err != nil {
				return err
			}
			u, err := a.users.CreateAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", u.Email, u.ID)
			return nil
		},
	}
	createAdmin.Flags().StringVar(&name, "name", "", "display name")
	createAdmin.Flags().StringVar(&email, "email", "", "login email")
	_ = createAdmin.MarkFlagRequired("name")
	_ = createAdmin.MarkFlagRequired("email")

	var promoteEmail, role string
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.users.SetRole(cmd.Context(), promoteEmail, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, u.Role)
			return nil
		},
	}
	promote.Flags().StringVar(&promoteEmail, "email", "", "account email")
	promote.Flags().StringVar(&role, "role", user.RoleAdmin, "new role (admin or user)")
	_ = promote.MarkFlagRequired("email")

	cmd.AddCommand(createAdmin, promote)
	return cmd
}

func newBookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage the catalog",
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Create books from a YAML catalog, skipping existing titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := book.LoadSeedFile(file)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return errors.New("no books in " + file)
			}
			res, err := a.books.Import(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}
	importCmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog path")
	_ = importCmd.MarkFlagRequired("file")

	cmd.AddCommand(importCmd)
	return cmd
}

func newExpireRevocationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expire-revocations",
		Short: "Delete revoked tokens that have expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.revocations.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d revocations\n", n)
			return nil
		},
	}
}
