package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ethanbaker/guardian/internal/orchestrator"
	"github.com/ethanbaker/guardian/internal/stores/session"
	"github.com/ethanbaker/guardian/internal/stores/threatlog"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/eventbus"
	"github.com/ethanbaker/guardian/pkg/metrics"
	"github.com/ethanbaker/guardian/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

// Orchestrator is a wrapper around the analysis pipeline and its stores
type Orchestrator struct {
	sessions   session.Store
	threats    threatlog.Store
	controller *orchestrator.Controller
	collector  *metrics.Collector
}

var console *Orchestrator

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Initialize database connections to create stores
	sessionStore, threatStore, err := openStores(cfg)
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to initialize stores: %v", err)
	}

	// Create the pipeline controller
	collector := metrics.NewCollector()
	controller, err := orchestrator.NewController(orchestrator.Options{
		Bus:      eventbus.New(),
		Metrics:  collector,
		Sessions: sessionStore,
		Threats:  threatStore,
	})
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to initialize controller: %v", err)
	}

	// Create the orchestrator with session and threat stores
	console = &Orchestrator{
		sessions:   sessionStore,
		threats:    threatStore,
		controller: controller,
		collector:  collector,
	}

	// Start interactive session
	ctx := context.Background()
	if err := startInteractiveSession(ctx); err != nil {
		log.Fatalf("Failed to start interactive session: %v", err)
	}
}

// openStores connects to MySQL when configured and falls back to a local
// sqlite file otherwise
func openStores(cfg *utils.Config) (session.Store, threatlog.Store, error) {
	if cfg.Get("MYSQL_HOST") != "" {
		dbConfig := mysql.Config{
			User:      cfg.Get("MYSQL_USER"),
			Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
			Net:       "tcp",
			Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
			DBName:    cfg.Get("MYSQL_DATABASE"),
			ParseTime: true,
		}

		sessions, err := session.NewMySqlStore(dbConfig.FormatDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
		}

		threats, err := threatlog.NewMySqlStore(dbConfig.FormatDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize threat log store: %w", err)
		}

		return sessions, threats, nil
	}

	path := cfg.GetWithDefault("SQLITE_PATH", "guardian.db")

	sessions, err := session.NewSqliteStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	threats, err := threatlog.NewSqliteStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize threat log store: %w", err)
	}

	return sessions, threats, nil
}

// startInteractiveSession initializes the command line interface for the analysis pipeline
func startInteractiveSession(ctx context.Context) error {
	fmt.Println("Guardian safety console started. Type 'exit' to quit, 'metrics' for a dashboard.")

	// Create a single session on startup for the entire conversation
	sess, err := console.sessions.CreateSession(ctx, "commandline-user")
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	fmt.Printf("Session created: %s\n", sess.ID)

	// Create scanner for reading user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if input == "metrics" {
			fmt.Println(console.collector.Dashboard())
			continue
		}

		// Execute the full pipeline with the persistent session
		report, err := executeAnalysis(ctx, sess, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		printReport(report)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func executeAnalysis(ctx context.Context, sess *session.Session, input string) (map[string]agent.Finding, error) {
	// Save user message
	if err := console.sessions.SaveMessage(ctx, session.NewMessage(sess.ID, session.RoleUser, input)); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	// Execute the pipeline
	rc := agent.NewRunContextForSession(sess.ID)
	report, err := console.controller.Analyze(ctx, input, rc)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	// Save the report as the assistant response
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	if err := console.sessions.SaveMessage(ctx, session.NewMessage(sess.ID, session.RoleAssistant, string(raw))); err != nil {
		return nil, fmt.Errorf("failed to save report message: %w", err)
	}

	return report, nil
}

// printReport writes a condensed view of the pipeline report to the terminal
func printReport(report map[string]agent.Finding) {
	fmt.Println("\n[SYSTEM REPORT]")

	if language, ok := report["language"]; ok {
		fmt.Printf("  Language:  %v (%v)\n", language["input_language"], language["output_translation"])
	}

	if status, ok := report["panic"]; ok {
		fmt.Printf("  Emergency: %v\n", status["emergency_status"])
	}

	if threat, ok := report["threat"]; ok {
		fmt.Printf("  Threat:    %v (severity %v)\n", threat["exact_threat_category"], threat["severity"])
	}

	if redflag, ok := report["redflag"]; ok {
		fmt.Printf("  Red Flag:  %v\n", redflag["red_flag_level"])
	}

	if evidence, ok := report["evidence"]; ok {
		fmt.Printf("  Evidence:  %v\n", evidence["summary_evidence_pack"])
	}

	if legal, ok := report["legal"]; ok {
		if laws, ok := legal["applicable_laws"].([]string); ok && len(laws) > 0 {
			fmt.Printf("  Legal:     %s\n", laws[0])
		}
	}

	if evaluation, ok := report["_evaluation"]; ok {
		fmt.Printf("  Quality:   %v\n", evaluation["quality_score"])
	}
}
