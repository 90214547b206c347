package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/potato4751/teaching-ai-validator/internal/app"
	"github.com/potato4751/teaching-ai-validator/internal/correction"
	"github.com/potato4751/teaching-ai-validator/internal/factcheck"
	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/respond"
	"github.com/potato4751/teaching-ai-validator/internal/session"
	"github.com/potato4751/teaching-ai-validator/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running with canned questions; fact-checking disabled.")
		provider = llm.NewMockProvider()
	}

	return app.Run(app.Options{
		Service: buildService(provider, eventRepo),
	})
}

// buildService assembles the teaching service from a provider.
func buildService(provider llm.Provider, events store.EventRepo) *session.Service {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	checker := factcheck.New(provider, factcheck.DefaultConfig())
	return session.New(
		respond.New(provider, respond.DefaultConfig(), rng),
		correction.NewMachine(checker, rng),
		events,
		session.DefaultConfig(),
	)
}
