package cli

import (
	"github.com/spf13/cobra"

	"github.com/filerecon/recon/internal/config"
	"github.com/filerecon/recon/internal/mcpserve"
	"github.com/filerecon/recon/internal/pipeline"
	"github.com/filerecon/recon/internal/store"
)

// serveCmd runs recon as an MCP server over an already-populated store
// (SPEC_FULL.md §6 [EXPANSION]): it never walks or enriches, it only opens
// -f/--file (or RECON_FILE/DATABASE_URL) and exposes a "query" tool. The
// store is opened read-write and statements are not restricted to reads.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server exposing the store over stdio",
	Long: `serve opens the configured store and speaks the Model Context
Protocol over stdio, exposing a single "query" tool that runs a SQL
statement against the files table. Statements are passed to the store
unchanged, including ones that modify it. It does not walk or enrich -- run
recon (or recon -u) first to populate the store.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fv := flagValues
	cfg, err := config.Load(fv, cmd)
	if err != nil {
		return pipeline.NewError("loading configuration", err)
	}

	st, err := store.Open(cfg.Source.File)
	if err != nil {
		return pipeline.NewError("opening store", err)
	}
	defer st.Close() //nolint:errcheck

	server := mcpserve.NewServer(st)
	if err := mcpserve.Serve(cmd.Context(), server); err != nil {
		return pipeline.NewError("running MCP server", err)
	}
	return nil
}
