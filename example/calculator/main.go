package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ngrammar/peg/example/calculator/calc"
)

func main() {
	p, err := calc.NewParser()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	buf := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">>> ")

		line, isPrefix, err := buf.ReadLine()
		if err != nil {
			break
		}
		if isPrefix {
			continue
		}

		expr := string(line)
		if expr == "" {
			continue
		}

		n, err := calc.Eval(p, expr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(n)
	}
}
