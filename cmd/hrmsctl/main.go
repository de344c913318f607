// Command hrmsctl drives the HRMS API from a terminal.
//
//	hrmsctl employees list
//	hrmsctl employees add -id E001 -name "Jane Doe" -email jane@co.com -dept Engineering
//	hrmsctl employees delete -id 3 -yes
//	hrmsctl attendance list -employee 3
//	hrmsctl attendance mark -employee 3 [-date 2024-01-10] [-status Absent]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"hrms_backend/internals/client"
	"hrms_backend/internals/configs"

	"github.com/joho/godotenv"
)

const usage = `usage: hrmsctl [-api URL] <employees|attendance> <command> [flags]

employees list
employees add -id ID -name NAME -email EMAIL -dept DEPARTMENT
employees delete -id PK -yes
attendance list -employee PK
attendance mark -employee PK [-date YYYY-MM-DD] [-status Present|Absent]
`

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := flag.NewFlagSet("hrmsctl", flag.ContinueOnError)
	root.SetOutput(stderr)
	apiURL := root.String("api", configs.GetEnv("HRMS_API_URL", "http://localhost:3000/api/"), "HRMS API base URL")
	timeout := root.Duration("timeout", 15*time.Second, "per-command timeout")
	root.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := root.Parse(args); err != nil {
		return 2
	}
	rest := root.Args()
	if len(rest) < 2 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	api, err := client.NewAPI(*apiURL, nil)
	if err != nil {
		fmt.Fprintf(stderr, "hrmsctl: %v\n", err)
		return 2
	}
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	c := &cli{
		dir:    client.NewDirectory(api),
		stdout: stdout,
		stderr: stderr,
	}
	c.ledger = client.NewLedger(api, c.dir)

	switch rest[0] + " " + rest[1] {
	case "employees list":
		err = c.listEmployees(ctx)
	case "employees add":
		err = c.addEmployee(ctx, rest[2:])
	case "employees delete":
		err = c.deleteEmployee(ctx, rest[2:])
	case "attendance list":
		err = c.listAttendance(ctx, rest[2:])
	case "attendance mark":
		err = c.markAttendance(ctx, rest[2:])
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		var f *client.Failure
		if errors.As(err, &f) {
			for _, field := range sortedFields(f.Fields) {
				for _, msg := range f.Fields[field] {
					fmt.Fprintf(stderr, "  %s: %s\n", field, msg)
				}
			}
		}
		return 1
	}
	return 0
}

type cli struct {
	dir    *client.Directory
	ledger *client.Ledger
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) listEmployees(ctx context.Context) error {
	list, err := c.dir.ListEmployees(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PK\tID\tNAME\tEMAIL\tDEPARTMENT")
	for _, e := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.EmployeeID, e.FullName, e.Email, e.Department)
	}
	return tw.Flush()
}

func (c *cli) addEmployee(ctx context.Context, args []string) error {
	fs := c.flags("employees add")
	var in client.EmployeeInput
	fs.StringVar(&in.EmployeeID, "id", "", "employee code")
	fs.StringVar(&in.FullName, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Department, "dept", "", "department")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := c.dir.CreateEmployee(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "created %s (%s) with pk %d\n", e.FullName, e.EmployeeID, e.ID)
	return nil
}

func (c *cli) deleteEmployee(ctx context.Context, args []string) error {
	fs := c.flags("employees delete")
	id := fs.Int64("id", 0, "employee pk")
	yes := fs.Bool("yes", false, "confirm deletion of the employee and all of their attendance")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.dir.DeleteEmployee(ctx, *id, *yes); err != nil {
		if errors.Is(err, client.ErrConfirmationRequired) {
			return fmt.Errorf("%w: pass -yes to delete employee %d and all of their attendance", err, *id)
		}
		return err
	}
	fmt.Fprintf(c.stdout, "deleted employee %d\n", *id)
	return nil
}

func (c *cli) listAttendance(ctx context.Context, args []string) error {
	fs := c.flags("attendance list")
	emp := fs.String("employee", "", "employee pk")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records, err := c.ledger.ListAttendance(ctx, *emp)
	if err != nil {
		return err
	}
	c.printRecords(records)
	return nil
}

func (c *cli) markAttendance(ctx context.Context, args []string) error {
	fs := c.flags("attendance mark")
	emp := fs.String("employee", "", "employee pk")
	date := fs.String("date", "", "date, defaults to today")
	status := fs.String("status", "", "Present or Absent, defaults to Present")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := c.ledger.MarkAttendance(ctx, *emp, client.MarkInput{Date: *date, Status: client.Status(*status)})
	if res != nil {
		fmt.Fprintf(c.stdout, "marked %s as %s\n", res.Record.Date, res.Record.Status)
	}
	if err != nil {
		return err
	}
	c.printRecords(res.Records)
	return nil
}

func (c *cli) printRecords(records []client.AttendanceRecord) {
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\n", r.Date, r.Status)
	}
	_ = tw.Flush()
	fmt.Fprintf(c.stdout, "present days: %d of %d\n", client.CountPresentDays(records), len(records))
}

func sortedFields(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
