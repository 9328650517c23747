package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"dashboard/pkg/apiclient"
	"dashboard/pkg/logger"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usage = `usage: dashctl [flags] <command>

commands:
  overview                dashboard headline numbers
  clients                 client list, best spenders first
  invoices                invoice list, newest first
  stats                   order statistics
  export-clients FILE     write the clients CSV to FILE
  export-invoices FILE    write the invoices CSV to FILE
`

type clientRow struct {
	ID           string `json:"id"`
	MerchantName string `json:"merchantName"`
	Name         string `json:"name"`
	OrderCount   int    `json:"orderCount"`
	TotalSpent   string `json:"totalSpent"`
	Status       string `json:"status"`
}

type invoiceRow struct {
	Number       string    `json:"number"`
	MerchantName string    `json:"merchantName"`
	Total        string    `json:"total"`
	Status       string    `json:"status"`
	DueAt        time.Time `json:"dueAt"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "dashboard API base URL")
	email := flag.String("email", "admin@dashboard.local", "login email")
	password := flag.String("password", "admin1234", "login password")
	timeout := flag.Duration("timeout", 30*time.Second, "overall command timeout")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.New("development")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := apiclient.New(*baseURL, apiclient.WithOnLogout(func() {
		fmt.Fprintln(os.Stderr, "session expired, logged out")
	}))
	if _, err := client.Login(ctx, *email, *password); err != nil {
		log.Fatal("login failed", zap.Error(err))
	}

	if err := run(ctx, client, flag.Args(), os.Stdout); err != nil {
		log.Fatal("command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func run(ctx context.Context, c *apiclient.Client, args []string, out io.Writer) error {
	switch args[0] {
	case "overview":
		return printJSON(ctx, c, "/admin/dashboard", out)
	case "stats":
		return printJSON(ctx, c, "/admin/orders/stats", out)
	case "clients":
		var page struct {
			Items []clientRow `json:"items"`
		}
		if err := c.Get(ctx, "/admin/clients", &page); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMERCHANT\tNAME\tORDERS\tSPENT\tSTATUS")
		for _, r := range page.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.MerchantName, r.Name, r.OrderCount, r.TotalSpent, r.Status)
		}
		return tw.Flush()
	case "invoices":
		var page struct {
			Items []invoiceRow `json:"items"`
		}
		if err := c.Get(ctx, "/admin/invoices", &page); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NUMBER\tMERCHANT\tTOTAL\tSTATUS\tDUE")
		for _, r := range page.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Number, r.MerchantName, r.Total, r.Status, r.DueAt.Format(time.DateOnly))
		}
		return tw.Flush()
	case "export-clients", "export-invoices":
		if len(args) < 2 {
			return fmt.Errorf("%s needs an output file", args[0])
		}
		path := "/admin/clients/export"
		if args[0] == "export-invoices" {
			path = "/admin/invoices/export"
		}
		b, err := c.Download(ctx, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[1], err)
		}
		fmt.Fprintf(out, "wrote %d bytes to %s\n", len(b), args[1])
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(ctx context.Context, c *apiclient.Client, path string, out io.Writer) error {
	var data json.RawMessage
	if err := c.Get(ctx, path, &data); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
