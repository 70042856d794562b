package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"filemanip/config"
	"filemanip/gitutil"
	"filemanip/rewriter"
	"filemanip/sources"
	"filemanip/transformations"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

type executionResult struct {
	name       string
	outputPath string
	err        error
}

var projectFile string
var executeNames []string
var executeAll bool
var contextFlags []string
var skipGitignore bool

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Run the rewrites defined in .filemanip.yaml",
	Long: `Reads the .filemanip.yaml file and runs the selected executions. Each
execution rewrites one input file with its commands and writes the changed
lines to its output file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.Load(projectFile)
		if err != nil {
			return err
		}

		// Determine which executions to run
		var selected []config.Execution
		if executeAll {
			selected = file.Executions
		} else if len(executeNames) > 0 {
			selected, err = file.Find(executeNames)
			if err != nil {
				return fmt.Errorf("%w in %s", err, projectFile)
			}
		} else {
			var names []string
			prompt := &survey.MultiSelect{
				Message: "Select executions to run:",
				Options: file.Names(),
			}
			if err := survey.AskOne(prompt, &names); err != nil {
				return fmt.Errorf("execution selection failed: %w", err)
			}
			selected, err = file.Find(names)
			if err != nil {
				return err
			}
		}

		var executions []config.Execution
		for _, exec := range selected {
			if exec.ShouldRun(contextFlags) {
				executions = append(executions, exec)
			} else {
				slog.Debug("Execution skipped by context.", "execution", exec.Name, "contexts", contextFlags)
			}
		}
		if len(executions) == 0 {
			return fmt.Errorf("no executions selected")
		}

		// Build every command list before writing anything
		commands := make([][]transformations.Transformation, len(executions))
		for i := range executions {
			commands[i], err = executions[i].Transformations()
			if err != nil {
				return err
			}
		}

		// Mutex for synchronized console output
		var outputMu sync.Mutex
		results := make(chan executionResult, len(executions))
		var wg sync.WaitGroup

		for i, exec := range executions {
			wg.Add(1)
			go func(exec config.Execution, commands []transformations.Transformation) {
				defer wg.Done()
				path, err := runExecution(cmd, exec, commands, &outputMu)
				results <- executionResult{name: exec.Name, outputPath: path, err: err}
			}(exec, commands[i])
		}

		wg.Wait()
		close(results)

		var errors []string
		var written []string
		for result := range results {
			if result.err != nil {
				errors = append(errors, fmt.Sprintf("%s: %v", result.name, result.err))
				continue
			}
			written = append(written, result.outputPath)
		}

		// Prompts can't run concurrently, so gitignore checks happen last
		if !skipGitignore {
			for _, path := range written {
				if err := gitutil.EnsureGitignored(path); err != nil {
					errors = append(errors, fmt.Sprintf("%s: %v", path, err))
				}
			}
		}

		if len(errors) > 0 {
			return fmt.Errorf("execution errors:\n  %s", strings.Join(errors, "\n  "))
		}

		return nil
	},
}

func runExecution(cmd *cobra.Command, exec config.Execution, commands []transformations.Transformation, outputMu *sync.Mutex) (string, error) {
	outputPath := exec.OutputPath()
	logger := slog.Default().With("execution", exec.Name)

	stats, err := rewriteToFile(rewriter.New(commands, logger), &sources.File{Path: exec.Input}, outputPath)
	if err != nil {
		return "", err
	}

	outputMu.Lock()
	fmt.Fprintf(cmd.OutOrStdout(), "  [%s] Wrote %d of %d lines to %s\n", exec.Name, stats.Written, stats.Read, outputPath)
	outputMu.Unlock()

	return outputPath, nil
}

func init() {
	executeCmd.Flags().StringVarP(&projectFile, "file", "f", config.DefaultPath, "project file defining the executions")
	executeCmd.Flags().StringArrayVar(&executeNames, "name", []string{}, "execution name to run (can be repeated)")
	executeCmd.Flags().BoolVar(&executeAll, "all", false, "run all executions")
	executeCmd.Flags().StringArrayVarP(&contextFlags, "context", "c", []string{}, "only run executions matching this context (can be repeated)")
	executeCmd.Flags().BoolVar(&skipGitignore, "skip-gitignore", false, "don't offer to add output files to .gitignore")
	rootCmd.AddCommand(executeCmd)
}
