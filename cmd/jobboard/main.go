package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/fadilmartias/job-portal/internal/client"
	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/fadilmartias/job-portal/internal/creation"
	"github.com/fadilmartias/job-portal/internal/directory"
	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `usage: jobboard <command> [flags]

commands:
  health                      check the backend is running
  list [-title -location -type -salary]
                              list postings, filtered locally
  create -title -company -location -description [...]
                              create a posting
  draft save [...]            save the form locally without sending it
  draft show                  print the saved draft
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := connectionHint(err, config.LoadClientConfig()); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, out io.Writer) error {
	cfg := config.LoadClientConfig()
	logger := newLogger(os.Getenv("JOBBOARD_DEBUG") != "")
	defer func() { _ = logger.Sync() }()

	api := client.New(cfg.APIURL, cfg.Timeout)

	switch cmd {
	case "health":
		health, err := api.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", health.Message, health.Timestamp)
		return nil
	case "list":
		return runList(ctx, directory.New(api, logger), args, out)
	case "create":
		return runCreate(ctx, creation.NewCreator(api, creation.NewDraftStore(cfg.DraftDir), logger), args, out)
	case "draft":
		return runDraft(creation.NewCreator(api, creation.NewDraftStore(cfg.DraftDir), logger), args, out)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

// connectionHint names the API the CLI tried to reach when the failure
// was on the way there rather than in the server.
func connectionHint(err error, cfg *config.ClientConfig) string {
	switch client.KindOf(err) {
	case client.KindUnreachable, client.KindTimeout:
		return fmt.Sprintf("API_URL=%s (timeout %s)", cfg.APIURL, cfg.Timeout)
	}
	return ""
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Printf("Could not build logger: %v", err)
		return zap.NewNop()
	}
	return logger
}

func runList(ctx context.Context, dir *directory.Directory, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var f directory.Filters
	fs.StringVar(&f.Title, "title", "", "job title contains")
	fs.StringVar(&f.Location, "location", "", "location contains")
	fs.StringVar(&f.JobType, "type", "", "exact job type")
	fs.IntVar(&f.Salary, "salary", 0, "salary that must fall within the posting's range")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir.SetFilters(f)
	if err := dir.Load(ctx); err != nil {
		return err
	}
	printJobs(out, dir.Visible())
	return nil
}

func printJobs(out io.Writer, jobs []dto.JobPostingDTO) {
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No jobs found matching your criteria.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tSALARY\tDEADLINE")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.JobTitle, j.CompanyName, j.Location, j.JobType, deref(j.SalaryRange), deref(j.ApplicationDeadline))
	}
	_ = tw.Flush()
}

func formFlags(name string, form *creation.Form) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&form.JobTitle, "title", form.JobTitle, "job title")
	fs.StringVar(&form.CompanyName, "company", form.CompanyName, "company name")
	fs.StringVar(&form.Location, "location", form.Location, "location")
	fs.StringVar(&form.JobType, "type", form.JobType, "Full-time, Part-time, Contract or Internship")
	fs.StringVar(&form.SalaryRange, "salary", form.SalaryRange, `salary range, e.g. "₹50k - ₹80k"`)
	fs.StringVar(&form.JobDescription, "description", form.JobDescription, "job description")
	fs.StringVar(&form.Requirements, "requirements", form.Requirements, "requirements")
	fs.StringVar(&form.Responsibilities, "responsibilities", form.Responsibilities, "responsibilities")
	fs.StringVar(&form.ApplicationDeadline, "deadline", form.ApplicationDeadline, "application deadline, YYYY-MM-DD")
	return fs
}

func runCreate(ctx context.Context, c *creation.Creator, args []string, out io.Writer) error {
	// First pass only reads -from-draft; the second binds the flags over
	// the starting form so explicit values win over the draft.
	var scratch creation.Form
	fs := formFlags("create", &scratch)
	fromDraft := fs.Bool("from-draft", false, "start from the saved draft")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fromDraft {
		if _, err := c.LoadDraft(); err != nil {
			return err
		}
	}

	form := c.Form()
	fs = formFlags("create", &form)
	fs.Bool("from-draft", false, "start from the saved draft")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.SetForm(form)

	resp, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (id %d)\n%s\n", resp.Message, resp.JobID, c.Confirmation())
	return nil
}

func runDraft(c *creation.Creator, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("draft needs a subcommand: save or show")
	}
	switch args[0] {
	case "save":
		form := c.Form()
		if err := formFlags("draft save", &form).Parse(args[1:]); err != nil {
			return err
		}
		c.SetForm(form)
		if err := c.SaveDraft(); err != nil {
			return fmt.Errorf("error saving draft, please try again: %w", err)
		}
		fmt.Fprintln(out, "Draft saved successfully!")
		return nil
	case "show":
		ok, err := c.LoadDraft()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "No draft saved.")
			return nil
		}
		printForm(out, c.Form())
		return nil
	default:
		return fmt.Errorf("unknown draft subcommand %q", args[0])
	}
}

func printForm(out io.Writer, f creation.Form) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"job_title", f.JobTitle},
		{"company_name", f.CompanyName},
		{"location", f.Location},
		{"job_type", f.JobType},
		{"salary_range", f.SalaryRange},
		{"job_description", f.JobDescription},
		{"requirements", f.Requirements},
		{"responsibilities", f.Responsibilities},
		{"application_deadline", f.ApplicationDeadline},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	_ = tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
