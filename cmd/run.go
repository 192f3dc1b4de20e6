package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lodteam/screening-bot/internal/ai"
	"github.com/lodteam/screening-bot/internal/ai/gemini"
	"github.com/lodteam/screening-bot/internal/analyzer"
	"github.com/lodteam/screening-bot/internal/gateway"
	"github.com/lodteam/screening-bot/internal/logger"
	"github.com/lodteam/screening-bot/internal/pipeline"
	"github.com/lodteam/screening-bot/internal/recruiting"
	"github.com/lodteam/screening-bot/internal/screening"
	"github.com/lodteam/screening-bot/internal/secrets"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// filePrefix marks console input that should be treated as a resume file attachment.
const filePrefix = "file:"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the screening conversation with a console transport",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screening-bot", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Analyzer == nil || config.Analyzer.URL == "" {
		logger.Fatal("analyzer url is required under analyzer.url to rank openings for a resume")
	}

	if config.Recruiting == nil || config.Recruiting.URL == "" {
		logger.Fatal("recruiting url is required under recruiting.url to load tests and submit results")
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal(
			"loading recruiting token",
			zap.Error(err),
			zap.String("hint", "set RECRUITING_TOKEN_FILE environment variable or the 'recruiting.token-file' key in the configuration file"),
		)
	}

	analyzerClient := analyzer.New(ctx, logger, config.Analyzer.URL)
	recruitingClient := recruiting.New(ctx, logger, config.Recruiting.URL, token)

	catalog := &gateway.Catalog{
		Analyzer:   analyzerClient,
		Recruiting: recruitingClient,
		Pipeline:   prepareOpeningsPipeline(ctx, config, logger),
	}

	submitter := &gateway.Submitter{Recruiting: recruitingClient}

	machine, err := screening.NewMachine(screening.NewStore(), catalog, submitter, logger)
	if err != nil {
		logger.Fatal("building the conversation machine", zap.Error(err))
	}

	if err := runConsole(ctx, machine); err != nil {
		logger.Info("exiting", zap.Error(err))
	}
}

// runConsole drives the machine from the terminal: keyboard choices become a
// select prompt, everything else is free text. A "file:<path>" input is sent
// as a resume attachment.
func runConsole(ctx context.Context, machine *screening.Machine) error {
	sessionID := uuid.NewString()

	replies, err := machine.Handle(ctx, &screening.Input{
		SessionID: sessionID,
		Kind:      screening.KindStart,
		Contact:   "console",
	})
	if err != nil {
		return err
	}

	for {
		keyboard := printReplies(replies)

		text, err := readInput(keyboard)
		if err != nil {
			return err
		}

		input := &screening.Input{
			SessionID: sessionID,
			Kind:      screening.KindText,
			Text:      text,
			Contact:   "console",
		}

		if path, ok := strings.CutPrefix(text, filePrefix); ok {
			path = strings.TrimSpace(path)
			input = &screening.Input{
				SessionID: sessionID,
				Kind:      screening.KindDocument,
				Contact:   "console",
				Document: &screening.Document{
					Name: pathBase(path),
					Fetch: func(context.Context) ([]byte, error) {
						return os.ReadFile(path)
					},
				},
			}
		}

		replies, err = machine.Handle(ctx, input)
		if err != nil {
			return err
		}
	}
}

func printReplies(replies []*screening.Reply) []screening.Choice {
	var keyboard []screening.Choice

	for _, reply := range replies {
		fmt.Println(reply.Text)
		for _, link := range reply.Links {
			fmt.Printf("  %s — %s\n", link.Label, link.URL)
		}
		if len(reply.Keyboard) > 0 {
			keyboard = reply.Keyboard
		}
	}

	return keyboard
}

func readInput(keyboard []screening.Choice) (string, error) {
	if len(keyboard) == 0 {
		prompt := promptui.Prompt{Label: ">"}
		return prompt.Run()
	}

	items := make([]string, 0, len(keyboard))
	for _, choice := range keyboard {
		items = append(items, choice.Label)
	}

	prompt := promptui.Select{
		Label: "Выбери вариант и нажми ENTER",
		Items: items,
	}

	_, selected, err := prompt.Run()
	return selected, err
}

func pathBase(path string) string {
	if idx := strings.LastIndexAny(path, "/\\"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.Recruiting.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("recruiting.token-file"))
	}

	// The recruiting API works unauthenticated in dev setups.
	if tokenFile == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name: "recruiting token",
		File: tokenFile,
	})
}

func prepareOpeningsPipeline(ctx context.Context, config *Config, logger *zap.Logger) *pipeline.Pipeline {
	openings := config.Openings
	if openings == nil {
		openings = &OpeningsConfig{Dedupe: true}
	}

	matcher, err := newAIMatcher(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI filter", zap.Error(err))
		matcher = nil
	}

	steps := []pipeline.Filter{
		pipeline.NewAIFit(matcher, logger),
		pipeline.NewLimit(openings.Limit),
	}

	if openings.Dedupe {
		steps = append([]pipeline.Filter{pipeline.NewDedupe()}, steps...)
	}

	return pipeline.New(steps, logger)
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Matcher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai filter is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinimumFitScore
	if minScore < 0 {
		minScore = 0
	}

	matcherLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Float64("minimum_fit_score", minScore),
	)

	return gemini.NewMatcher(generator, minScore, cfg.Gemini.MaxLogLength, matcherLogger), nil
}
