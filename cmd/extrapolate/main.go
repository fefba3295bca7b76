// Command extrapolate runs an interactive moving-average extrapolation over a
// small price series. Each answer extends the series used by the next prompt.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"MrPredictor/internal/calculator"

	"github.com/dustin/go-humanize"
)

var seedPrices = []float64{110, 103, 109, 110, 145}

func main() {
	run(os.Stdin, os.Stdout, seedPrices)
}

func run(in io.Reader, out io.Writer, prices []float64) {
	series := append([]float64(nil), prices...)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter number of future predictions: ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			return
		}
		steps, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(out, "Error")
			continue
		}
		// a negative count predicts nothing
		predictions, err := calculator.Extrapolate(series, calculator.ExtrapolationWindow, max(steps, 0))
		if err != nil {
			fmt.Fprintln(out, "Error")
			continue
		}
		series = append(series, predictions...)
		fmt.Fprintln(out, format(predictions))
	}
}

func format(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = humanize.Ftoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
