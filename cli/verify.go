// ABOUTME: Workspace schema verification command
package cli

import (
	"context"
	"fmt"

	"github.com/lecanape/canape/notion"
)

// VerifySchemaCommand checks that every property the field mappings
// rely on exists in the workspace databases with the expected type.
func VerifySchemaCommand(client *notion.Client) error {
	if err := client.VerifySchema(context.Background()); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ Workspace schema matches the field mappings"))
	return nil
}
