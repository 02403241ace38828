package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rockstar/posy"
)

var (
	parseJSON bool
	parseYAML bool
	parseCore bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse one metadata file",
	Long: `Parse a METADATA, PKG-INFO or WHEEL file. Prints the fields (and body)
back out by default, or the full document as JSON/YAML. With --core the
body is folded into the Description field first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}

		doc, err := posy.Parse(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing metadata: %v\n", err)
			os.Exit(1)
		}

		var out any = doc
		fields := doc.Fields
		if parseCore {
			core := posy.NewCoreMetadata(doc)
			out = core
			fields = core.Fields
		}

		switch {
		case parseJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
		case parseYAML:
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(out); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding YAML: %v\n", err)
				os.Exit(1)
			}
			encoder.Close()
		default:
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, value := range fields[name] {
					fmt.Printf("%s: %s\n", name, value)
				}
			}
			if !parseCore && doc.Body != nil {
				fmt.Printf("\n%s", *doc.Body)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output in JSON format")
	parseCmd.Flags().BoolVar(&parseYAML, "yaml", false, "Output in YAML format")
	parseCmd.Flags().BoolVar(&parseCore, "core", false, "Fold the body into the Description field")
}
