// ABOUTME: Mailchimp profile sync command
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lecanape/canape/mailchimp"
)

// MailchimpSyncCommand backfills Mailchimp profile links on persons.
func MailchimpSyncCommand(client *mailchimp.Client, directory mailchimp.PersonDirectory, args []string) error {
	fs := flag.NewFlagSet("mailchimp-sync", flag.ExitOnError)
	_ = fs.Parse(args)

	report, err := client.SyncProfiles(context.Background(), directory)
	if err != nil {
		return err
	}

	if len(report.Updated) == 0 {
		fmt.Println("All persons already have a profile link")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tPROFILE")
	for _, person := range report.Updated {
		fmt.Fprintf(w, "%s\t%s\t%s\n", person.Name, person.Email, person.MailchimpProfile)
	}
	_ = w.Flush()

	fmt.Printf("\n%s\n", successStyle.Render(
		fmt.Sprintf("✓ %d profiles linked (%d contacts created)", len(report.Updated), len(report.Created))))
	return nil
}
