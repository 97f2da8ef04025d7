package main

import "github.com/mvp-joe/project-scrub/internal/cli"

func main() {
	cli.Execute()
}
