package main

import "di-quality/src/handler/cli"

func main() {
	cli.Run()
}
