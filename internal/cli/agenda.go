package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/dates"
	"github.com/ambrogio-dev/ambrogio/internal/organiser"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda [date]",
	Short: "Show the organiser section for a day",
	Long: `Show the "# YYYY-MM-DD" section of the daily organiser.

The date is today, tomorrow, yesterday or YYYY-MM-DD (default: today).`,
	Example: `  ambrogio agenda
  ambrogio agenda tomorrow
  ambrogio agenda 2026-03-01 --json`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: dates.Keywords,
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		day, err := dates.ParseDateArg(arg, time.Now())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use today, tomorrow, yesterday or YYYY-MM-DD")
		}

		path, err := getConfig().RequireOrganiser()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Set organiser_file in the config")
		}
		content, err := organiser.Read(path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		section, found := organiser.SectionFor(organiser.Sections(content), day)
		if isJSONOutput() {
			data := map[string]interface{}{
				"date":  dates.FormatDate(day),
				"found": found,
			}
			if found {
				data["line"] = section.Line
				data["body"] = section.Body
				data["items"] = section.Items()
			}
			outputSuccess(data, nil)
			return nil
		}

		if !found {
			printf("Nothing scheduled for %s.\n", dates.FormatDate(day))
			return nil
		}
		printf("%s", renderReply("# "+section.Day+"\n\n"+section.Body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agendaCmd)
}
