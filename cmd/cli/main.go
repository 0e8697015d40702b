package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/collectionsdesk/paxcash/internal/config"
	"github.com/collectionsdesk/paxcash/pkg/clients/sheetsclient"
	"github.com/collectionsdesk/paxcash/pkg/core/activation"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/services"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
	"github.com/collectionsdesk/paxcash/pkg/db"
	"github.com/collectionsdesk/paxcash/pkg/export"
	"github.com/collectionsdesk/paxcash/pkg/postgres"
	"github.com/collectionsdesk/paxcash/pkg/utils/logging"
)

const defaultActivationLimit = 20

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	gate     *activation.Gate
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env        string
	actingName string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "paxcash",
		Short: "Passenger cash collection reporting",
		Long:  `A CLI tool for submitting, reconciling and exporting airport passenger cash-collection reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&actingName, "user", "u", "", "Acting username")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(submitReportCmd())
	rootCmd.AddCommand(correctReportCmd())
	rootCmd.AddCommand(editCountsCmd())
	rootCmd.AddCommand(editReconciliationCmd())
	rootCmd.AddCommand(verifyReportCmd())
	rootCmd.AddCommand(deleteReportCmd())
	rootCmd.AddCommand(listReportsCmd())
	rootCmd.AddCommand(daySummaryCmd())
	rootCmd.AddCommand(activateWindowCmd())
	rootCmd.AddCommand(clearWindowCmd())
	rootCmd.AddCommand(windowStatusCmd())
	rootCmd.AddCommand(recentActivationsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(publishVerifiedCmd())
	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(setUserActiveCmd())
	rootCmd.AddCommand(deleteUserCmd())
	rootCmd.AddCommand(resetPasswordCmd())
	rootCmd.AddCommand(listUsersCmd())
	rootCmd.AddCommand(referenceCmd())
	rootCmd.AddCommand(expectedFlightsCmd())
	rootCmd.AddCommand(addCommentCmd())
	rootCmd.AddCommand(listCommentsCmd())
	rootCmd.AddCommand(deleteCommentCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and the activation gate
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Debug("Database ready")

	if err := seedRootAdmin(); err != nil {
		return err
	}

	app.gate = activation.NewGate(app.database)

	return nil
}

// seedRootAdmin creates the built-in admin account on first run. The initial
// password comes from PAXCASH_ADMIN_PASSWORD and should be reset immediately.
func seedRootAdmin() error {
	existing, err := app.database.GetUser(app.ctx, "admin")
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	password := os.Getenv("PAXCASH_ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("no admin account exists - set PAXCASH_ADMIN_PASSWORD to seed one")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := app.database.InsertUser(app.ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	app.logger.Info("Seeded built-in admin account")
	return nil
}

// actingUser resolves the --user flag to a stored account
func actingUser() (model.User, error) {
	if actingName == "" {
		return model.User{}, fmt.Errorf("this command requires --user")
	}

	user, err := app.database.GetUser(app.ctx, actingName)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return model.User{}, fmt.Errorf("unknown user %q", actingName)
	}
	return *user, nil
}

// Command definitions

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Check credentials against the user database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := services.Authenticate(app.ctx, app.database, app.logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\nWelcome %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
}

// countFlags registers the twelve raw count flags on a command
func countFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"paid", "diplomats", "infants", "not-paid", "paid-card-qr", "refunds",
		"deportees", "transit", "waivers", "prepaid-bank", "round-trip", "late-payment",
	} {
		cmd.Flags().String(name, "", "Count of "+strings.ReplaceAll(name, "-", " ")+" passengers")
	}
}

func countsPayload(cmd *cobra.Command) validation.CountsPayload {
	get := func(name string) string {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	return validation.CountsPayload{
		Paid:        get("paid"),
		Diplomats:   get("diplomats"),
		Infants:     get("infants"),
		NotPaid:     get("not-paid"),
		PaidCardQr:  get("paid-card-qr"),
		Refunds:     get("refunds"),
		Deportees:   get("deportees"),
		Transit:     get("transit"),
		Waivers:     get("waivers"),
		PrepaidBank: get("prepaid-bank"),
		RoundTrip:   get("round-trip"),
		LatePayment: get("late-payment"),
	}
}

// checkReferenceName warns when a submitted name is not on the admin list.
// The core service only requires the field to be non-blank.
func checkReferenceName(kind, name string, list []string) {
	for _, entry := range list {
		if strings.EqualFold(entry, name) {
			return
		}
	}
	fmt.Printf("Note: %s %q is not on the reference list\n", kind, name)
}

func submitReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submitReport",
		Short: "Submit a new cash-collection report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			date, _ := cmd.Flags().GetString("date")
			refNo, _ := cmd.Flags().GetString("ref-no")
			supervisor, _ := cmd.Flags().GetString("supervisor")
			flight, _ := cmd.Flags().GetString("flight")
			zone, _ := cmd.Flags().GetString("zone")

			lists, err := services.ListReferenceLists(app.ctx, app.database)
			if err != nil {
				return err
			}
			checkReferenceName("supervisor", supervisor, lists.Supervisors)
			checkReferenceName("flight", flight, lists.Flights)

			payload := validation.ReportPayload{
				Date:          date,
				RefNo:         refNo,
				Supervisor:    supervisor,
				Flight:        flight,
				Zone:          zone,
				CountsPayload: countsPayload(cmd),
			}

			report, err := services.SubmitReport(app.ctx, app.database, app.logger, payload, user)
			if err != nil {
				return err
			}

			fmt.Printf("\nReport submitted\n\n")
			fmt.Printf("ID:             %s\n", report.ID)
			fmt.Printf("Ref No:         %s\n", report.RefNo)
			fmt.Printf("Total Attended: %d\n", report.Totals.TotalAttended)
			fmt.Printf("IICS Total:     %d\n", report.Totals.IicsTotal)
			fmt.Printf("GIA Total:      %d\n", report.Totals.GiaTotal)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().String("ref-no", "", "Reference number (generated when blank)")
	cmd.Flags().String("supervisor", "", "Supervisor name")
	cmd.Flags().String("flight", "", "Flight name")
	cmd.Flags().String("zone", "", "Zone (arrival or departure)")
	countFlags(cmd)

	return cmd
}

func correctReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correctReport <report_id>",
		Short: "Correct your own report inside an open edit window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			remarks, _ := cmd.Flags().GetString("remarks")
			input := services.TeamLeadUpdateInput{
				Counts:  countsPayload(cmd),
				Remarks: remarks,
			}

			report, err := services.UpdateReportAsTeamLead(app.ctx, app.database, app.gate, app.logger, args[0], input, user)
			if err != nil {
				return err
			}

			fmt.Printf("\nReport corrected - new attended total %d\n", report.Totals.TotalAttended)
			return nil
		},
	}

	cmd.Flags().String("remarks", "", "Remarks")
	countFlags(cmd)

	return cmd
}

func editCountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editCounts <report_id>",
		Short: "Revise a report's raw counts as a data analyst",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			counts := countsPayload(cmd)
			input := services.AnalystEditInput{Counts: &counts}
			if cmd.Flags().Changed("remarks") {
				remarks, _ := cmd.Flags().GetString("remarks")
				input.Remarks = &remarks
			}

			report, err := services.UpdateReportAsAnalyst(app.ctx, app.database, app.logger, args[0], input, user)
			if err != nil {
				return err
			}

			fmt.Printf("\nCounts revised - new attended total %d", report.Totals.TotalAttended)
			if !report.Verified {
				fmt.Printf(" (report pending verification)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("remarks", "", "Remarks")
	countFlags(cmd)

	return cmd
}

func reconciliationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("iics-infant", 0, "IICS infant count")
	cmd.Flags().Int("iics-adult", 0, "IICS adult count")
	cmd.Flags().Int("gia-infant", 0, "GIA infant count")
	cmd.Flags().Int("gia-adult", 0, "GIA adult count")
}

func reconciliationInput(cmd *cobra.Command) services.ReconciliationInput {
	get := func(name string) int {
		value, _ := cmd.Flags().GetInt(name)
		return value
	}
	return services.ReconciliationInput{
		IicsInfant: get("iics-infant"),
		IicsAdult:  get("iics-adult"),
		GiaInfant:  get("gia-infant"),
		GiaAdult:   get("gia-adult"),
	}
}

func editReconciliationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editReconciliation <report_id>",
		Short: "Revise a report's IICS/GIA figures as a data analyst",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			rec := reconciliationInput(cmd)
			input := services.AnalystEditInput{Reconciliation: &rec}
			if cmd.Flags().Changed("remarks") {
				remarks, _ := cmd.Flags().GetString("remarks")
				input.Remarks = &remarks
			}

			report, err := services.UpdateReportAsAnalyst(app.ctx, app.database, app.logger, args[0], input, user)
			if err != nil {
				return err
			}

			fmt.Printf("\nReconciliation revised - IICS %d (%+d), GIA %d (%+d)\n",
				report.Totals.IicsTotal, report.Totals.IicsTotalDifference,
				report.Totals.GiaTotal, report.Totals.GiaTotalDifference)
			return nil
		},
	}

	cmd.Flags().String("remarks", "", "Remarks")
	reconciliationFlags(cmd)

	return cmd
}

func verifyReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifyReport <report_id>",
		Short: "Reconcile and verify a pending report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			report, err := services.VerifyReport(app.ctx, app.database, app.logger, args[0], reconciliationInput(cmd), user)
			if err != nil {
				return err
			}

			fmt.Printf("\nReport verified\n\n")
			fmt.Printf("IICS Total: %d (difference %+d)\n", report.Totals.IicsTotal, report.Totals.IicsTotalDifference)
			fmt.Printf("GIA Total:  %d (difference %+d)\n", report.Totals.GiaTotal, report.Totals.GiaTotalDifference)
			return nil
		},
	}

	reconciliationFlags(cmd)

	return cmd
}

func deleteReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteReport <report_id>",
		Short: "Delete a report (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.DeleteReport(app.ctx, app.database, app.logger, args[0], user); err != nil {
				return err
			}

			fmt.Println("Report deleted")
			return nil
		},
	}
}

func reportFilter(cmd *cobra.Command) db.ReportFilter {
	get := func(name string) string {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	verifiedOnly, _ := cmd.Flags().GetBool("verified")
	return db.ReportFilter{
		Supervisor:   get("supervisor"),
		Flight:       get("flight"),
		DateFrom:     get("from"),
		DateTo:       get("to"),
		VerifiedOnly: verifiedOnly,
	}
}

func listReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listReports",
		Short: "List reports, filtered or your own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var reports []model.Report
			var err error

			mine, _ := cmd.Flags().GetBool("mine")
			if mine {
				user, err := actingUser()
				if err != nil {
					return err
				}
				reports, err = services.ListReportsForUser(app.ctx, app.database, user.Username)
				if err != nil {
					return err
				}
			} else {
				reports, err = services.ListAllReports(app.ctx, app.database, reportFilter(cmd))
				if err != nil {
					return err
				}
			}

			fmt.Printf("\nFound %d reports:\n\n", len(reports))
			for _, r := range reports {
				status := "pending"
				if r.Verified {
					status = "verified"
				}
				fmt.Printf("- %s  %s  %-10s %-12s attended=%-5d %s (%s)\n",
					r.Date, r.RefNo, r.FlightName, string(r.Zone),
					r.Totals.TotalAttended, status, r.ID)
			}
			return nil
		},
	}

	cmd.Flags().Bool("mine", false, "Only your own reports")
	cmd.Flags().String("supervisor", "", "Filter by supervisor substring")
	cmd.Flags().String("flight", "", "Filter by flight substring")
	cmd.Flags().String("from", "", "Start date (inclusive)")
	cmd.Flags().String("to", "", "End date (inclusive)")
	cmd.Flags().Bool("verified", false, "Only verified reports")

	return cmd
}

func daySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daySummary <date>",
		Short: "Aggregate the verified reports of one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := services.VerificationDaySummary(app.ctx, app.database, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSummary for %s\n\n", summary.Date)
			fmt.Printf("Verified reports: %d\n", summary.VerifiedCount)
			fmt.Printf("IICS total:       %d (difference %+d)\n", summary.IicsTotal, summary.IicsDifference)
			fmt.Printf("GIA total:        %d (difference %+d)\n", summary.GiaTotal, summary.GiaDifference)
			return nil
		},
	}
}

func activateWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activateWindow <team_lead> <date>",
		Short: "Open the edit window for a team lead and date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.ActivateTeamLeadWindow(app.ctx, app.gate, app.database, app.logger, args[0], args[1], user); err != nil {
				return err
			}

			fmt.Printf("Edit window open for %s on %s\n", args[0], args[1])
			return nil
		},
	}
}

func clearWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clearWindow",
		Short: "Close the open edit window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.ClearTeamLeadWindow(app.ctx, app.gate, app.logger, user); err != nil {
				return err
			}

			fmt.Println("Edit window cleared")
			return nil
		},
	}
}

func windowStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windowStatus <team_lead> [date]",
		Short: "Check whether an edit window is open for a team lead",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) > 1 {
				date = args[1]
			}

			open, err := services.IsTeamLeadWindowOpen(app.ctx, app.gate, args[0], date)
			if err != nil {
				return err
			}

			if open {
				fmt.Println("Window open")
			} else {
				fmt.Println("Window closed")
			}
			return nil
		},
	}
}

func recentActivationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recentActivations [limit]",
		Short: "List recently granted edit windows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := app.cfg.ActivationLimit
			if limit == 0 {
				limit = defaultActivationLimit
			}
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("limit must be a number: %w", err)
				}
				limit = parsed
			}

			records, err := services.RecentActivations(app.ctx, app.database, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d recent activations:\n\n", len(records))
			for _, r := range records {
				fmt.Printf("- %s granted %s for %s at %s\n", r.ActivatedBy, r.Username, r.Date, r.CreatedAt)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output_file>",
		Short: "Export verified reports to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			result, err := services.ExportVerifiedReports(app.ctx, app.database, app.logger, reportFilter(cmd), user)
			if err != nil {
				return err
			}

			outPath := args[0]
			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()

			if strings.HasSuffix(strings.ToLower(outPath), ".xlsx") {
				err = export.WriteXLSX(file, result)
			} else {
				err = export.WriteCSV(file, result)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d verified reports to %s\n", len(result.Rows), outPath)
			return nil
		},
	}

	cmd.Flags().String("supervisor", "", "Filter by supervisor substring")
	cmd.Flags().String("flight", "", "Filter by flight substring")
	cmd.Flags().String("from", "", "Start date (inclusive)")
	cmd.Flags().String("to", "", "End date (inclusive)")
	cmd.Flags().Bool("verified", true, "Only verified reports (always on)")

	return cmd
}

func publishVerifiedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishVerified",
		Short: "Publish verified reports to the shared Google spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if app.cfg.SpreadsheetID == "" || app.cfg.VerifiedTab == "" {
				return fmt.Errorf("spreadsheetID and verifiedTab must be configured to publish")
			}

			result, err := services.ExportVerifiedReports(app.ctx, app.database, app.logger, reportFilter(cmd), user)
			if err != nil {
				return err
			}

			oauthCfg, err := config.LoadOAuthClientWithEnv(env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.ctx, oauthCfg, env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			if err := client.PublishVerified(app.cfg.SpreadsheetID, app.cfg.VerifiedTab, result); err != nil {
				return err
			}

			fmt.Printf("Published %d verified reports to tab %q\n", len(result.Rows), app.cfg.VerifiedTab)
			return nil
		},
	}

	cmd.Flags().String("supervisor", "", "Filter by supervisor substring")
	cmd.Flags().String("flight", "", "Filter by flight substring")
	cmd.Flags().String("from", "", "Start date (inclusive)")
	cmd.Flags().String("to", "", "End date (inclusive)")
	cmd.Flags().Bool("verified", true, "Only verified reports (always on)")

	return cmd
}

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createUser <username> <password> <role>",
		Short: "Create an account (admin only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			gender, _ := cmd.Flags().GetString("gender")
			email, _ := cmd.Flags().GetString("email")
			telephone, _ := cmd.Flags().GetString("telephone")

			created, err := services.CreateUser(app.ctx, app.database, app.logger, services.NewUserInput{
				Username:  args[0],
				Password:  args[1],
				Role:      model.Role(args[2]),
				Gender:    gender,
				Email:     email,
				Telephone: telephone,
			}, user)
			if err != nil {
				return err
			}

			fmt.Printf("User %s created with role %s\n", created.Username, created.Role)
			return nil
		},
	}

	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("telephone", "", "Telephone number")

	return cmd
}

func setUserActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setUserActive <username> <true|false>",
		Short: "Activate or deactivate an account (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("second argument must be true or false: %w", err)
			}

			if err := services.SetUserActive(app.ctx, app.database, app.logger, args[0], active, user); err != nil {
				return err
			}

			fmt.Printf("User %s active=%t\n", args[0], active)
			return nil
		},
	}
}

func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteUser <username>",
		Short: "Delete an account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.DeleteUser(app.ctx, app.database, app.logger, args[0], user); err != nil {
				return err
			}

			fmt.Printf("User %s deleted\n", args[0])
			return nil
		},
	}
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resetPassword <username> <new_password>",
		Short: "Reset an account's password (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.ResetPassword(app.ctx, app.database, app.logger, args[0], args[1], user); err != nil {
				return err
			}

			fmt.Printf("Password reset for %s\n", args[0])
			return nil
		},
	}
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listUsers",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.database.GetUsers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			fmt.Printf("\nFound %d users:\n\n", len(users))
			for _, u := range users {
				status := "active"
				if !u.Active {
					status = "inactive"
				}
				fmt.Printf("- %-16s %-15s %s\n", u.Username, u.Role, status)
			}
			return nil
		},
	}
}

func referenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Manage the flight and supervisor reference lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show both reference lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := services.ListReferenceLists(app.ctx, app.database)
			if err != nil {
				return err
			}

			fmt.Printf("\nFlights (%d):\n", len(lists.Flights))
			for _, name := range lists.Flights {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Printf("\nSupervisors (%d):\n", len(lists.Supervisors))
			for _, name := range lists.Supervisors {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	})

	type refOp struct {
		use   string
		short string
		run   func(name string, user model.User) error
		done  string
	}
	ops := []refOp{
		{"addFlight <name>", "Add a flight name (admin only)",
			func(name string, user model.User) error {
				return services.AddFlight(app.ctx, app.database, app.logger, name, user)
			}, "Flight added"},
		{"deleteFlight <name>", "Delete a flight name (admin only)",
			func(name string, user model.User) error {
				return services.DeleteFlight(app.ctx, app.database, app.logger, name, user)
			}, "Flight deleted"},
		{"addSupervisor <name>", "Add a supervisor name (admin only)",
			func(name string, user model.User) error {
				return services.AddSupervisor(app.ctx, app.database, app.logger, name, user)
			}, "Supervisor added"},
		{"deleteSupervisor <name>", "Delete a supervisor name (admin only)",
			func(name string, user model.User) error {
				return services.DeleteSupervisor(app.ctx, app.database, app.logger, name, user)
			}, "Supervisor deleted"},
	}

	for _, op := range ops {
		op := op
		cmd.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := actingUser()
				if err != nil {
					return err
				}
				if err := op.run(args[0], user); err != nil {
					return err
				}
				fmt.Println(op.done)
				return nil
			},
		})
	}

	return cmd
}

func expectedFlightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expectedFlights <date>",
		Short: "List flights scheduled to operate on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flights, err := services.ExpectedFlights(app.cfg.FlightSchedules, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d flights expected on %s:\n\n", len(flights), args[0])
			for _, name := range flights {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		},
	}
}

func addCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addComment <report_id> <content>",
		Short: "Attach a comment to a report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			comment, err := services.AddComment(app.ctx, app.database, app.logger, args[0], args[1], user)
			if err != nil {
				return err
			}

			fmt.Printf("Comment %s added\n", comment.ID)
			return nil
		},
	}
}

func listCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listComments <report_id>",
		Short: "List a report's comments, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := services.ListComments(app.ctx, app.database, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d comments:\n\n", len(comments))
			for _, c := range comments {
				fmt.Printf("[%s] %s: %s (%s)\n", c.CreatedAt, c.Author, c.Content, c.ID)
			}
			return nil
		},
	}
}

func deleteCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteComment <comment_id>",
		Short: "Delete a comment you wrote (or any, as admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			if err := services.DeleteComment(app.ctx, app.database, app.logger, args[0], user); err != nil {
				return err
			}

			fmt.Println("Comment deleted")
			return nil
		},
	}
}
