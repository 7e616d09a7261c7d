package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gamotph/adr-intelligence/pkg/client"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// NewNormalizeCmd creates the normalize command. Reaction texts come from
// positional arguments or, with --input, one per line from a file ("-" for
// stdin). Identical texts are collapsed into a single weighted item before
// submission.
func NewNormalizeCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "normalize [reaction text]...",
		Short: "Normalize raw reaction texts into canonical labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			api, err := requireClient(cliCtx)
			if err != nil {
				return err
			}

			texts := append([]string{}, args...)
			if inputPath != "" {
				fromFile, readErr := readLines(inputPath)
				if readErr != nil {
					return readErr
				}
				texts = append(texts, fromFile...)
			}
			items := collapseTexts(texts)
			if len(items) == 0 {
				return errors.InvalidParam("no reaction texts given; pass arguments or --input")
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			dist, err := api.Analytics().NormalizeReactions(ctx, items)
			if err != nil {
				return err
			}
			return PrintResult(cmd, labelTable{Items: dist.Items})
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", `file with one reaction text per line ("-" for stdin)`)
	return cmd
}

func readLines(path string) ([]string, error) {
	var reader *bufio.Scanner
	if path == "-" {
		reader = bufio.NewScanner(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "open input file")
		}
		defer f.Close()
		reader = bufio.NewScanner(f)
	}

	var lines []string
	for reader.Scan() {
		if line := strings.TrimSpace(reader.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "read input file")
	}
	return lines, nil
}

// collapseTexts merges duplicate texts into weighted items, preserving the
// order texts first appeared.
func collapseTexts(texts []string) []client.ReactionItem {
	index := make(map[string]int)
	var items []client.ReactionItem
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if i, ok := index[text]; ok {
			items[i].Count++
			continue
		}
		index[text] = len(items)
		items = append(items, client.ReactionItem{Text: text, Count: 1})
	}
	return items
}
