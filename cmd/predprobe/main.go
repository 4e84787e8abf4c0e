package main

import "github.com/Yumouqianxia/predprobe/internal/cli"

func main() {
	cli.Execute()
}
