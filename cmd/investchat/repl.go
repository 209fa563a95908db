package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/chatbot"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/ui"
)

// selfTestQuestions is the short sweep answered before the interactive
// loop starts, as a smoke test of the whole ingest-query chain.
var selfTestQuestions = []string{
	"How many projects are there?",
	"Count projects by company",
	"Show all companies",
	"What is the total budget?",
	"List all regions",
}

func runSelfTest(engine *chatbot.Engine) {
	fmt.Println("Testing chatbot with sample questions:")
	fmt.Println(strings.Repeat("=", 50))
	for _, question := range selfTestQuestions {
		askAndPrint(engine, question)
		fmt.Println()
	}
	fmt.Println("Starting interactive mode...")
}

func runREPL(engine *chatbot.Engine) {
	fmt.Println("Investment Data Chatbot")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Ask questions about the investment data in natural language!")
	fmt.Println("Type 'help' for sample questions, 'columns' to see available data, or 'quit' to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Your question: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(question) {
		case "quit", "exit", "bye":
			fmt.Println("Goodbye!")
			return
		case "help":
			printHelp()
		case "columns":
			printColumns(engine)
		case "":
			fmt.Println("Please enter a question or type 'help' for examples.")
		default:
			askAndPrint(engine, question)
		}
	}
}

func askAndPrint(engine *chatbot.Engine, question string) {
	fmt.Printf("\nQuestion: %s\n", question)
	fmt.Println(strings.Repeat("-", 50))

	answer := engine.Ask(context.Background(), question)
	fmt.Printf("Generated SQL: %s\n", answer.SQL)
	fmt.Println(strings.Repeat("-", 50))

	if !answer.Success || answer.Results.Empty() {
		fmt.Println("No results found or query failed.")
		return
	}

	fmt.Println("Results:")
	printResultTable(answer.Results)
}

// printResultTable writes a padded text table, one column per result field.
func printResultTable(rs *sheet.ResultSet) {
	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = len(col)
	}
	rendered := make([][]string, len(rs.Rows))
	for r, row := range rs.Rows {
		cells := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			cells[i] = ui.FormatValue(row[col])
			if len(cells[i]) > widths[i] {
				widths[i] = len(cells[i])
			}
		}
		rendered[r] = cells
	}

	for i, col := range rs.Columns {
		fmt.Printf("%-*s  ", widths[i], col)
	}
	fmt.Println()
	for _, cells := range rendered {
		for i, cell := range cells {
			fmt.Printf("%-*s  ", widths[i], cell)
		}
		fmt.Println()
	}
}

func printHelp() {
	fmt.Println("\nSample questions you can ask:")
	fmt.Println(strings.Repeat("-", 30))
	for _, q := range sheet.SampleQuestions {
		fmt.Printf("  - %s\n", q)
	}
}

func printColumns(engine *chatbot.Engine) {
	fmt.Println("\nAvailable columns in the database:")
	fmt.Println(strings.Repeat("-", 50))
	for i, col := range engine.Columns() {
		fmt.Printf("%2d. %s\n", i+1, col)
	}
}
