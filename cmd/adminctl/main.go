package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aadyanvi/wealth-admin/client"
	"github.com/aadyanvi/wealth-admin/internal/logging"
)

const usage = `adminctl drives the investment admin API.

Usage:
  adminctl [flags] <command> [args]

Commands:
  stats                      dashboard aggregates
  users                      list investors
  plans                      list investment plans
  deposits                   pending deposit requests
  withdrawals                pending withdrawal requests
  approve-deposit <txId>     approve a pending deposit
  reject-deposit <txId>      reject a pending deposit
  approve-withdrawal <txId>  approve a pending withdrawal
  reject-withdrawal <txId>   reject a pending withdrawal
  verify <userId> <approve|reject>  decide a KYC verification

Flags:
`

func main() {
	var (
		baseURL  = flag.String("url", envOr("ADMIN_API_URL", "http://localhost:8080"), "admin API base URL")
		email    = flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
		password = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.New(*logLevel)

	api, err := client.New(*baseURL)
	if err != nil {
		logger.Error("build client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *email != "" {
		if err := api.Login(ctx, *email, *password); err != nil {
			logger.Error("login failed", "error", err)
			os.Exit(1)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch cmd := flag.Arg(0); cmd {
	case "stats":
		stats, err := api.Stats(ctx)
		if err != nil {
			logger.Error("fetch stats", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(w, "AUM\t%.2f\n", stats.AUM)
		fmt.Fprintf(w, "Active investors\t%d\n", stats.ActiveInvestors)
		fmt.Fprintf(w, "Unused funds\t%.2f\n", stats.UnusedFunds)
		fmt.Fprintf(w, "Active plans\t%d\n", stats.TotalPlans)
		fmt.Fprintf(w, "Pending requests\t%d\n", stats.PendingRequests)

	case "users":
		// A failed listing degrades to an empty table; the diagnostic
		// goes to the log, not the table.
		users, err := api.Users(ctx)
		if err != nil {
			logger.Error("fetch users", "error", err)
			users = nil
		}
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATE\tBALANCE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.VerificationState, u.AvailableBalance)
		}

	case "plans":
		plans, err := api.Plans(ctx)
		if err != nil {
			logger.Error("fetch plans", "error", err)
			plans = nil
		}
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tROI(AAR)\tMIN\tTERM\tSTATUS")
		for _, p := range plans {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%d\t%s\n", p.ID, p.ProductName, p.ProductType, p.ROIAAR, p.MinInvestment, p.InvestmentTerm, p.Status)
		}

	case "deposits", "withdrawals":
		fetch := api.PendingDeposits
		if cmd == "withdrawals" {
			fetch = api.PendingWithdrawals
		}
		txs, err := fetch(ctx)
		if err != nil {
			logger.Error("fetch transactions", "error", err, "queue", cmd)
			txs = nil
		}
		fmt.Fprintln(w, "ID\tUSER\tAMOUNT\tREQUESTED")
		for _, tx := range txs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.ID, tx.UserID, tx.Amount, tx.CreatedAt)
		}

	case "approve-deposit", "reject-deposit", "approve-withdrawal", "reject-withdrawal":
		if flag.NArg() < 2 {
			logger.Error("missing transaction id", "command", cmd)
			os.Exit(2)
		}
		txID := flag.Arg(1)
		status := "approved"
		if cmd == "reject-deposit" || cmd == "reject-withdrawal" {
			status = "reject"
		}
		decide := api.DecideDeposit
		if cmd == "approve-withdrawal" || cmd == "reject-withdrawal" {
			decide = api.DecideWithdrawal
		}
		if err := decide(ctx, txID, status); err != nil {
			logger.Error("decision failed", "error", err, "tx_id", txID)
			os.Exit(1)
		}
		fmt.Fprintf(w, "%s\t%s\n", txID, status)

	case "verify":
		if flag.NArg() < 3 {
			logger.Error("usage: verify <userId> <approve|reject>")
			os.Exit(2)
		}
		if err := api.VerifyUser(ctx, flag.Arg(1), flag.Arg(2)); err != nil {
			logger.Error("verification failed", "error", err, "user_id", flag.Arg(1))
			os.Exit(1)
		}
		fmt.Fprintf(w, "%s\t%s\n", flag.Arg(1), flag.Arg(2))

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
