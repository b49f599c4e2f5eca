// Package main provides the motifscan CLI entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/motifscan/graph"
	"github.com/katalvlaran/motifscan/motif"
	"github.com/katalvlaran/motifscan/search"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "motifscan",
		Short: "Compile and search graph motifs",
		Long: `motifscan compiles a motif description written in the motif DSL and
searches a host graph for occurrences of it, using a VF2-style subgraph
monomorphism engine with negative edges, attribute constraints, and
automorphism-aware result deduplication.`,
	}

	root.AddCommand(newSearchCmd(), newCountCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("motifscan v%s\n", version)
		},
	}
}

func newSearchCmd() *cobra.Command {
	var motifPath, hostPath, quantifier string
	var limit int
	var ignoreDirection, excludeAutomorphisms, multiEdges bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print every mapping of a motif found in a host graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, host, err := loadMotifAndHost(motifPath, hostPath, multiEdges)
			if err != nil {
				return err
			}
			opts, err := searchOptions(quantifier, limit, ignoreDirection, excludeAutomorphisms)
			if err != nil {
				return err
			}
			cur, err := m.Search(cmd.Context(), host, opts...)
			if err != nil {
				return err
			}
			for cur.Next() {
				fmt.Println(formatMapping(cur.Mapping()))
			}
			return cur.Err()
		},
	}
	addSearchFlags(cmd, &motifPath, &hostPath, &quantifier, &limit, &ignoreDirection, &excludeAutomorphisms, &multiEdges)
	return cmd
}

func newCountCmd() *cobra.Command {
	var motifPath, hostPath, quantifier string
	var limit int
	var ignoreDirection, excludeAutomorphisms, multiEdges bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of mappings of a motif found in a host graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, host, err := loadMotifAndHost(motifPath, hostPath, multiEdges)
			if err != nil {
				return err
			}
			opts, err := searchOptions(quantifier, limit, ignoreDirection, excludeAutomorphisms)
			if err != nil {
				return err
			}
			n, err := m.Count(context.Background(), host, opts...)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	addSearchFlags(cmd, &motifPath, &hostPath, &quantifier, &limit, &ignoreDirection, &excludeAutomorphisms, &multiEdges)
	return cmd
}

func addSearchFlags(cmd *cobra.Command, motifPath, hostPath, quantifier *string, limit *int, ignoreDirection, excludeAutomorphisms, multiEdges *bool) {
	cmd.Flags().StringVar(motifPath, "motif", "", "path to a motif DSL source file (required)")
	cmd.Flags().StringVar(hostPath, "host", "", "path to a host edge-list file, one \"u,v\" pair per line (required)")
	cmd.Flags().StringVar(quantifier, "quantifier", "any", "multigraph edge match quantifier: any|all")
	cmd.Flags().IntVar(limit, "limit", 0, "cap on mappings returned, 0 means unlimited")
	cmd.Flags().BoolVar(ignoreDirection, "ignore-direction", false, "treat motif edges as undirected")
	cmd.Flags().BoolVar(excludeAutomorphisms, "exclude-automorphisms", false, "keep only the lexicographically-smallest mapping per automorphism orbit")
	cmd.Flags().BoolVar(multiEdges, "multi-edges", false, "load the host as a multigraph, allowing parallel edges")
	_ = cmd.MarkFlagRequired("motif")
	_ = cmd.MarkFlagRequired("host")
}

func searchOptions(quantifier string, limit int, ignoreDirection, excludeAutomorphisms bool) ([]motif.SearchOption, error) {
	var q search.Quantifier
	switch quantifier {
	case "any", "":
		q = search.MatchAny
	case "all":
		q = search.MatchAll
	default:
		return nil, fmt.Errorf("motifscan: unknown quantifier %q, want any or all", quantifier)
	}
	opts := []motif.SearchOption{
		motif.WithMultigraphEdgeMatch(q),
		motif.WithResultLimit(limit),
	}
	if ignoreDirection {
		opts = append(opts, motif.WithIgnoreDirection())
	}
	if excludeAutomorphisms {
		opts = append(opts, motif.WithExcludeAutomorphisms())
	}
	return opts, nil
}

func loadMotifAndHost(motifPath, hostPath string, multiEdges bool) (*motif.Motif, *graph.Graph, error) {
	src, err := os.ReadFile(motifPath)
	if err != nil {
		return nil, nil, fmt.Errorf("motifscan: reading motif file: %w", err)
	}
	m, err := motif.Compile(string(src))
	if err != nil {
		return nil, nil, fmt.Errorf("motifscan: compiling motif: %w", err)
	}

	host, err := loadHostGraph(hostPath, multiEdges)
	if err != nil {
		return nil, nil, err
	}
	return m, host, nil
}

// loadHostGraph reads a simple "u,v" edge list, one edge per line, blank
// lines and "#"-prefixed comments ignored.
func loadHostGraph(path string, multiEdges bool) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("motifscan: reading host file: %w", err)
	}
	defer f.Close()

	var opts []graph.Option
	if multiEdges {
		opts = append(opts, graph.WithMultiEdges())
	}
	g := graph.NewGraph(opts...)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("motifscan: %s:%d: expected \"u,v\", got %q", path, lineNo, line)
		}
		u, v := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if _, err := g.AddEdge(u, v, nil); err != nil {
			return nil, fmt.Errorf("motifscan: %s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("motifscan: reading host file: %w", err)
	}
	return g, nil
}

func formatMapping(mp search.Mapping) string {
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, mp[k]))
	}
	return strings.Join(parts, " ")
}
