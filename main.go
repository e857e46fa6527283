package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputPath  string
	outputPath string
	configPath string
	mysqlDSN   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sql2dbml",
	Short: "Convert MySQL CREATE TABLE statements to DBML",
	Long: `sql2dbml translates MySQL CREATE TABLE DDL into DBML schema text
suitable for rendering an entity-relationship diagram.

Reads from stdin when no input file is given and writes to stdout when no
output file is given.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input SQL file (default: stdin)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output DBML file (default: stdout)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to TOML render options file")
	rootCmd.Flags().StringVar(&mysqlDSN, "from-mysql", "", "collect DDL from a live MySQL database instead of a file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose progress output")
	rootCmd.Version = versionString()
	log.SetFlags(0)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if !verbose {
		log.SetOutput(io.Discard)
	}

	cfg := defaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return err
		}
	}

	sqlText, err := readSQLText()
	if err != nil {
		return err
	}
	if err := validateInput(sqlText); err != nil {
		return err
	}

	log.Printf("converting %d bytes of DDL", len(sqlText))
	dbmlText, err := Convert(sqlText, cfg)
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Print(dbmlText)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(dbmlText), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("wrote %d bytes to %s", len(dbmlText), outputPath)
	return nil
}

func readSQLText() (string, error) {
	switch {
	case mysqlDSN != "" && inputPath != "":
		return "", fmt.Errorf("--input and --from-mysql are mutually exclusive")
	case mysqlDSN != "":
		log.Printf("collecting DDL from MySQL")
		return collectMySQLDDL(mysqlDSN)
	case inputPath != "":
		log.Printf("reading %s", inputPath)
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	default:
		log.Printf("reading from stdin")
		data, err := io.ReadAll(io.LimitReader(os.Stdin, maxInputSize+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
