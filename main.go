package main

import "github.com/insightdelivered/cashflow-ocr/cmd"

func main() {
	cmd.Execute()
}
