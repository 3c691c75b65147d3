package main

import (
	"github.com/makovalab-psu/pairalign/cmd"
)

func main() {
	cmd.Execute()
}
