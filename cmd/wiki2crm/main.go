package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sappho-digital/wiki2crm/internal/util"
	"github.com/sappho-digital/wiki2crm/pkg/align"
	"github.com/sappho-digital/wiki2crm/pkg/authors"
	"github.com/sappho-digital/wiki2crm/pkg/intertext"
	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/logger/console"
	"github.com/sappho-digital/wiki2crm/pkg/store"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
	"github.com/sappho-digital/wiki2crm/pkg/works"
)

var version = "0.1.0"

func main() {
	util.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "wiki2crm",
		Short: "Wikidata to CIDOC CRM graph builder",
		Long: `wiki2crm builds a CIDOC CRM (eCRM), LRMoo and INTRO knowledge
graph for a corpus of literary works from Wikidata.

Given a list of work QIDs it produces:
  - Intertextual relations between works (shared characters, motifs,
    plots, topics, citations and direct Wikidata relation statements)
  - Bibliographic descriptions of the works (titles, genres, creation
    events, manifestations, items)
  - Author descriptions (appellations, identifiers, life events)
  - A merged graph aligned with reference CIDOC CRM and FRBRoo`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", util.GetEnvBool("WIKI2CRM_DEBUG", false), "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		logger.Init(console.New(console.Params{Debug: debug}))
	}

	rootCmd.AddCommand(relationsCmd())
	rootCmd.AddCommand(worksCmd())
	rootCmd.AddCommand(authorsCmd())
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(alignCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addClientFlags registers the SPARQL client flags shared by the
// commands that talk to the Wikidata Query Service. Environment
// variables provide the defaults so a .env file can configure a run.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("endpoint", util.GetEnvString("WIKI2CRM_ENDPOINT", wikidata.DefaultEndpoint), "SPARQL endpoint URL")
	cmd.Flags().String("user-agent", util.GetEnvString("WIKI2CRM_USER_AGENT", wikidata.DefaultUserAgent), "User-Agent header for SPARQL requests")
	cmd.Flags().Float64("rate", 1, "Maximum SPARQL requests per second")
	cmd.Flags().Int("max-retries", util.GetEnvInt("WIKI2CRM_MAX_RETRIES", 5), "Retry attempts for transient SPARQL failures")
}

func clientFromFlags(cmd *cobra.Command) *wikidata.Client {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	rate, _ := cmd.Flags().GetFloat64("rate")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return wikidata.NewClient(wikidata.Config{
		Endpoint:          endpoint,
		UserAgent:         userAgent,
		RequestsPerSecond: rate,
		MaxRetries:        maxRetries,
	})
}

// addOutputFlags registers the flags controlling where and how the
// resulting graph is written.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringP("format", "f", "turtle", "Output format (turtle, ntriples, json)")
}

func writeGraph(cmd *cobra.Command, ts *store.TripleStore) error {
	output, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")

	format, err := store.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	serializer := store.NewTurtleSerializer()

	if output == "" {
		data, err := ts.Export(format, serializer)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}
	if err := ts.WriteFile(output, format, serializer); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	logger.Info("graph written", "path", output, "format", format, "triples", ts.Count())
	return nil
}

func readInputQIDs(cmd *cobra.Command) ([]string, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return nil, fmt.Errorf("--input flag is required")
	}
	qids, err := wikidata.ReadQIDFile(input)
	if err != nil {
		return nil, err
	}
	if len(qids) == 0 {
		return nil, fmt.Errorf("no QIDs found in %s", input)
	}
	return qids, nil
}

func relationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "Build the intertextual relations graph",
		Long: `Build intertextual relations between the input works.

Works are related when they share content entities (characters, motifs,
plots, topics, persons, places), cite one another, reference one another
as works, or carry direct relation statements on Wikidata. Each relation
is modelled as an INTRO INT31 node with the features and actualizations
that ground it.

Examples:
  wiki2crm relations --input works.csv
  wiki2crm relations --input works.csv --output relations.ttl
  wiki2crm relations --input works.csv --types classifier.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			qids, err := readInputQIDs(cmd)
			if err != nil {
				return err
			}

			var options []intertext.AssemblerOption
			if typesPath, _ := cmd.Flags().GetString("types"); typesPath != "" {
				mapping, err := intertext.LoadTypeMapping(typesPath)
				if err != nil {
					return fmt.Errorf("failed to load type mapping: %w", err)
				}
				options = append(options, intertext.WithTypeMapping(mapping))
			}

			assembler := intertext.NewAssembler(clientFromFlags(cmd), options...)
			graph, err := assembler.Run(cmd.Context(), qids)
			if err != nil {
				return err
			}

			ts := store.NewTripleStore()
			if err := intertext.EmitTriples(graph, ts); err != nil {
				return err
			}
			align.EmitECRMAlignment(ts)
			return writeGraph(cmd, ts)
		},
	}

	cmd.Flags().StringP("input", "i", "", "CSV file with work QIDs in the first column")
	cmd.Flags().String("types", "", "YAML file overriding the entity classifier buckets")
	addClientFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func worksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "works",
		Short: "Build the bibliographic works graph",
		Long: `Build LRMoo bibliographic descriptions for the input works:
work, expression, manifestation and item with their creation events,
titles, genres, publishers and publication places.

Examples:
  wiki2crm works --input works.csv --output works.ttl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			qids, err := readInputQIDs(cmd)
			if err != nil {
				return err
			}
			ts, err := works.NewGenerator(clientFromFlags(cmd)).Generate(cmd.Context(), qids)
			if err != nil {
				return err
			}
			return writeGraph(cmd, ts)
		},
	}

	cmd.Flags().StringP("input", "i", "", "CSV file with work QIDs in the first column")
	addClientFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func authorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Build the authors graph",
		Long: `Build eCRM person descriptions for the input authors:
appellations, identifiers, birth and death events, gender and images.

Examples:
  wiki2crm authors --input authors.csv --output authors.ttl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			qids, err := readInputQIDs(cmd)
			if err != nil {
				return err
			}
			ts, err := authors.NewGenerator(clientFromFlags(cmd)).Generate(cmd.Context(), qids)
			if err != nil {
				return err
			}
			return writeGraph(cmd, ts)
		},
	}

	cmd.Flags().StringP("input", "i", "", "CSV file with author QIDs in the first column")
	addClientFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [graph.json ...]",
		Short: "Merge stage graphs into one",
		Long: `Merge the JSON dumps of the relations, works and authors stages
into a single graph. Per-stage ontology headers are replaced with a
combined header and duplicate labels are reduced to one per entity.

Stage graphs must be produced with --format json.

Examples:
  wiki2crm merge relations.json works.json authors.json --output all.ttl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]*store.TripleStore, 0, len(args))
			for _, path := range args {
				source, err := store.ReadJSONFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				sources = append(sources, source)
			}
			return writeGraph(cmd, align.Merge(sources...))
		},
	}

	addOutputFlags(cmd)
	return cmd
}

func alignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Enrich a graph with external identifiers",
		Long: `Look up external identifiers (GND, VIAF, GeoNames, Goodreads,
schema.org, DBpedia) for every entity linked to Wikidata in the input
graph and add them as owl:sameAs links. GND, VIAF and GeoNames
identifiers also get typed E42 identifier nodes.

The input graph must be a JSON dump produced with --format json.

Examples:
  wiki2crm align --input all.json --output all-aligned.ttl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			ts, err := store.ReadJSONFile(input)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}
			if _, err := align.Enrich(cmd.Context(), clientFromFlags(cmd), ts); err != nil {
				return err
			}
			return writeGraph(cmd, ts)
		},
	}

	cmd.Flags().StringP("input", "i", "", "JSON graph dump to align")
	addClientFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}
