package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/nerrad567/sqlean-go/internal/infrastructure/database"
)

func newQueryCmd(a *app) *cobra.Command {
	var header bool

	cmd := &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a query against the configured database",
		Long: `Run one SQL statement with the activated modules and print the rows
tab-separated. Extra arguments are bound to ? placeholders as text.`,
		Example: `  SQLEAN_ENABLE_TEXT=1 sqlean query "select text_reverse(?)" hello
  sqlean --config sqlean.yaml query --header "select sqlean_version()"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]any, len(args)-1)
			for i, v := range args[1:] {
				params[i] = v
			}
			return a.query(cmd, args[0], params, header)
		},
	}
	cmd.Flags().BoolVar(&header, "header", false, "print column names first")

	return cmd
}

func (a *app) query(cmd *cobra.Command, sql string, params []any, header bool) error {
	ctx := cmd.Context()

	db, err := database.Open(ctx, database.Config{
		Path:        a.cfg.Database.Path,
		WALMode:     a.cfg.Database.WALMode,
		BusyTimeout: a.cfg.Database.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read path, nothing to flush

	rows, err := db.Query(ctx, sql, params...)
	if err != nil {
		return err
	}
	a.log.Debug("query complete", "rows", len(rows.Values))

	if header {
		fmt.Fprintln(a.out, strings.Join(rows.Columns, "\t"))
	}
	fields := make([]string, len(rows.Columns))
	for _, row := range rows.Values {
		for i, v := range row {
			fields[i] = formatValue(v)
		}
		fmt.Fprintln(a.out, strings.Join(fields, "\t"))
	}
	return nil
}

// formatValue renders a scanned column value. Blobs that are not valid
// UTF-8 are shown as SQL hex literals.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case []byte:
		if utf8.Valid(v) {
			return string(v)
		}
		return "X'" + strings.ToUpper(hex.EncodeToString(v)) + "'"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
