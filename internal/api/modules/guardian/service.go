package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethanbaker/guardian/internal/agents/legal"
	"github.com/ethanbaker/guardian/internal/orchestrator"
	"github.com/ethanbaker/guardian/internal/stores/session"
	"github.com/ethanbaker/guardian/internal/stores/threatlog"
	"github.com/ethanbaker/guardian/internal/tools"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/eventbus"
	"github.com/ethanbaker/guardian/pkg/metrics"
	"github.com/ethanbaker/guardian/pkg/utils"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// Service wires the controller, stores, and observability together for
// the API layer
type Service struct {
	controller *orchestrator.Controller
	sessions   session.Store
	threats    threatlog.Store
	collector  *metrics.Collector
	bus        *eventbus.Bus

	vaultDir string
}

var service *Service

// Init creates the guardian service for the API to run off of
func Init(cfg *utils.Config) {
	sessions, threats, err := openStores(cfg)
	if err != nil {
		log.Fatalf("[GUARDIAN]: Failed to initialize stores: %v", err)
	}

	collector := metrics.NewCollector()
	bus := eventbus.New()

	controller, err := orchestrator.NewController(orchestrator.Options{
		Bus:      bus,
		Metrics:  collector,
		Sessions: sessions,
		Threats:  threats,
	})
	if err != nil {
		log.Fatalf("[GUARDIAN]: Failed to initialize controller: %v", err)
	}

	service = &Service{
		controller: controller,
		sessions:   sessions,
		threats:    threats,
		collector:  collector,
		bus:        bus,
		vaultDir:   cfg.GetWithDefault("EVIDENCE_VAULT_DIR", "evidence_vault"),
	}
}

// GetService returns the service instance
func GetService() *Service {
	if service == nil {
		log.Fatal("[GUARDIAN]: Service is not initialized")
	}
	return service
}

// openStores connects the session and threat stores. MySQL is used when
// configured, otherwise a local sqlite file
func openStores(cfg *utils.Config) (session.Store, threatlog.Store, error) {
	if cfg.Get("MYSQL_HOST") != "" {
		// Create MySQL config
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
			return nil, nil, fmt.Errorf("failed to initialize threat store: %w", err)
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
		return nil, nil, fmt.Errorf("failed to initialize threat store: %w", err)
	}

	return sessions, threats, nil
}

// NewSession creates a new analysis session
func (s *Service) NewSession(ctx context.Context, userID string) (*session.Session, error) {
	return s.sessions.CreateSession(ctx, userID)
}

// FindSession retrieves an existing session with its messages by UUID
func (s *Service) FindSession(ctx context.Context, sessionID string) (*session.Session, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	return s.sessions.GetSessionWithMessages(ctx, guid)
}

// RemoveSession deletes an existing session and returns it
func (s *Service) RemoveSession(ctx context.Context, sessionID string) (*session.Session, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	sess, err := s.sessions.GetSessionWithMessages(ctx, guid)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteSession(ctx, guid); err != nil {
		return nil, err
	}

	return sess, nil
}

// Analyze runs the full pipeline over a text within a session. Both the
// user turn and the resulting report are persisted to history
func (s *Service) Analyze(ctx context.Context, sessionID string, text string) (map[string]agent.Finding, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	// Make sure the session exists before writing history
	if _, err := s.sessions.GetSession(ctx, guid); err != nil {
		return nil, err
	}

	if err := s.sessions.SaveMessage(ctx, session.NewMessage(guid, session.RoleUser, text)); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	rc := agent.NewRunContextForSession(guid)
	report, err := s.controller.Analyze(ctx, text, rc)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := s.sessions.SaveMessage(ctx, session.NewMessage(guid, session.RoleAssistant, string(raw))); err != nil {
		return nil, fmt.Errorf("failed to save report message: %w", err)
	}

	return report, nil
}

// QuickAnalyze runs the full pipeline without a persistent session
func (s *Service) QuickAnalyze(ctx context.Context, text string) (map[string]agent.Finding, error) {
	return s.controller.Analyze(ctx, text, agent.NewRunContext())
}

// History returns the stored conversation history of a session
func (s *Service) History(ctx context.Context, sessionID string) ([]*session.Message, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	return s.sessions.GetSessionMessages(ctx, guid)
}

// AnalyzeFile inspects a file by name: media forensics on the name plus
// the text pipeline over a canned description of the file
func (s *Service) AnalyzeFile(ctx context.Context, filename string) (map[string]any, map[string]agent.Finding, error) {
	media, err := s.mediaAnalysis(ctx, filename)
	if err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("Analyze this file: %s. It might contain evidence of harassment or threats.", filename)
	report, err := s.controller.Analyze(ctx, description, agent.NewRunContext())
	if err != nil {
		return nil, nil, err
	}

	return media, report, nil
}

// mediaAnalysis picks the forensic tool matching the file type
func (s *Service) mediaAnalysis(ctx context.Context, filename string) (map[string]any, error) {
	var (
		name   string
		params map[string]any
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".aac", ".mp3", ".wav", ".ogg":
		name, params = "AudioForensics", map[string]any{"audio": filename}
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		name, params = "ImageSafety", map[string]any{"image": filename}
	default:
		name, params = "DeepfakeDetector", map[string]any{"media": filename}
	}

	tool, err := s.controller.Tools().Get(name)
	if err != nil {
		return nil, err
	}

	result, err := tool.Execute(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("media analysis failed: %w", err)
	}

	s.collector.RecordToolUsage(name)
	return result, nil
}

// SaveEvidence stores a note and/or files in the evidence vault under
// the session's directory and returns the written paths
func (s *Service) SaveEvidence(ctx context.Context, sessionID string, note string, files []string) ([]string, error) {
	guid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format: %v", err)
	}

	if strings.TrimSpace(note) == "" && len(files) == 0 {
		return nil, fmt.Errorf("no evidence provided")
	}

	dir := filepath.Join(s.vaultDir, guid.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create evidence directory: %w", err)
	}

	var paths []string

	if strings.TrimSpace(note) != "" {
		path := filepath.Join(dir, fmt.Sprintf("evidence_text_%d.txt", time.Now().UnixNano()))
		if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write evidence note: %w", err)
		}
		paths = append(paths, path)
	}

	for _, file := range files {
		path, err := s.vaultFile(dir, file)
		if err != nil {
			return nil, fmt.Errorf("failed to vault file %s: %w", filepath.Base(file), err)
		}
		paths = append(paths, path)
	}

	log.Printf("[GUARDIAN]: %d evidence item(s) saved to %s", len(paths), dir)
	return paths, nil
}

// vaultFile copies a single evidence file into the vault directory
func (s *Service) vaultFile(dir string, file string) (string, error) {
	src, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, filepath.Base(file))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path, nil
}

// Legal returns canned guidance for a country and situation, plus the
// knowledge base lookup for it
func (s *Service) Legal(ctx context.Context, country string, situation string) (agent.Finding, map[string]any, error) {
	rc := agent.NewRunContext()

	input := situation
	if country != "" {
		input = fmt.Sprintf("%s | %s", country, situation)
	}

	guidance := agent.Run(ctx, legal.NewAgent(), input, rc)

	lookup, err := s.lawBookLookup(ctx, country, situation)
	if err != nil {
		log.Printf("[GUARDIAN]: law book lookup failed: %v", err)
		lookup = nil
	}

	return guidance, lookup, nil
}

// lawBookLookup searches the internal law book for the situation
func (s *Service) lawBookLookup(ctx context.Context, country string, situation string) (map[string]any, error) {
	tool, err := s.controller.Tools().Get("LegalDatabase")
	if err != nil {
		return nil, err
	}

	result, err := tool.Execute(ctx, map[string]any{"query": situation, "country": country})
	if err != nil {
		return nil, err
	}

	s.collector.RecordToolUsage("LegalDatabase")
	return result, nil
}

// Metrics returns the current metrics snapshot
func (s *Service) Metrics() (requests int, errors int, toolUsage map[string]int, heatmap map[string]int, dashboard string) {
	requests, errors = s.collector.Totals()
	return requests, errors, s.collector.ToolUsage(), s.collector.ThreatHeatmap(), s.collector.Dashboard()
}

// Tools exposes the tool registry, used by the commandline app
func (s *Service) Tools() *tools.Registry {
	return s.controller.Tools()
}
