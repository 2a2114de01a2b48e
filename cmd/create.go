/*
Copyright © 2026 The vgdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/vgarchive/vgdb/internal/iodb"
	"github.com/vgarchive/vgdb/internal/ioschema"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the vgdb schema in an empty PostgreSQL database.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates games, companies, employees, platforms, releases and
     credit tables using GORM AutoMigrate
  4. Adds foreign keys between them

Use --force to skip confirmation and drop existing tables.

Examples:
  vgdb create
  vgdb create --force
  vgdb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	// Check if database has tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables {
		if !force {
			gn.Warn("Database contains existing tables.")
			gn.Warn("Creating schema will drop ALL existing tables and data.")
			ok, err := confirm()
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}
			if !ok {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping all existing tables...")
		if err := op.DropAllTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("All tables dropped")
	}

	// Create schema manager
	sm := ioschema.NewManager(op)

	// Run GORM AutoMigrate to create tables
	gn.Info("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Database schema creation complete!")
	gn.Info("Next step: run 'vgdb import' with a list of game pages")

	return nil
}

func confirm() (bool, error) {
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
